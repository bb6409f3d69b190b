package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple decimal", "123.45", "123.45"},
		{"Comma decimal separator", "123,45", "123.45"},
		{"Comma thousands", "1,234.56", "1234.56"},
		{"Multiple comma thousands", "1,234,567.89", "1234567.89"},
		{"European format", "1.234,56", "1234.56"},
		{"European multiple separators", "1.234.567,89", "1234567.89"},
		{"Comma grouping without decimals", "1,234,567", "1234567"},
		{"Period grouping without decimals", "1.234.567", "1234567"},
		{"Single comma is decimal", "1,234", "1.234"},
		{"Single period is decimal", "1.140", "1.140"},
		{"Three fraction digits", "0,001", "0.001"},
		{"Integer", "100", "100"},
		{"Surrounding spaces", "  1.14  ", "1.14"},
		{"Garbage untouched", "12a", "12a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestParseTransactionAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{"Minimum", "0.01", "0.01", nil},
		{"Maximum", "999999999.99", "999999999.99", nil},
		{"European", "1.234,56", "1234.56", nil},
		{"Trailing zero", "1.140", "1.14", nil},
		{"Zero", "0", "", ErrAmountOutOfRange},
		{"Too large", "1000000000", "", ErrAmountOutOfRange},
		{"Three decimals", "1.145", "", ErrTooManyDecimals},
		{"Three decimals with comma", "0,001", "", ErrTooManyDecimals},
		{"Three digits after period", "1.239", "", ErrTooManyDecimals},
		{"Short integer part", "234.567", "", ErrTooManyDecimals},
		{"Long integer part", "1234.567", "", ErrTooManyDecimals},
		{"Grouped with decimals", "1,234,567.89", "1234567.89", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTransactionAmount(tc.input)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got.StringFixed(2))
		})
	}

	_, err := ParseTransactionAmount("abc")
	assert.Error(t, err)
	_, err = ParseTransactionAmount("-1.00")
	assert.Error(t, err)
}

func TestCheckTransactionAmount(t *testing.T) {
	assert.NoError(t, CheckTransactionAmount(decimal.RequireFromString("1.140")))
	assert.ErrorIs(t, CheckTransactionAmount(decimal.NewFromFloat(1.239)), ErrTooManyDecimals)
	assert.ErrorIs(t, CheckTransactionAmount(decimal.RequireFromString("0.001")), ErrTooManyDecimals)
	assert.ErrorIs(t, CheckTransactionAmount(decimal.Zero), ErrAmountOutOfRange)
}

func TestNormalizeAmount(t *testing.T) {
	got, err := NormalizeAmount("1,5")
	require.NoError(t, err)
	assert.Equal(t, "1.50", got)

	_, err = NormalizeAmount("")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	de := DefaultMoneyFormat()
	us := MoneyFormat{DecimalSeparator: ".", ThousandsSeparator: ",", CurrencyFormat: "EUR %s"}

	tests := []struct {
		name     string
		amount   string
		format   MoneyFormat
		expected string
	}{
		{"Small", "1.14", de, "1,14 €"},
		{"Thousands", "1234567.8", de, "1.234.567,80 €"},
		{"Exactly three digits", "999", de, "999,00 €"},
		{"US style", "1234.5", us, "EUR 1,234.50"},
		{"Negative", "-1234.5", us, "EUR -1,234.50"},
		{"No currency", "3.48", MoneyFormat{DecimalSeparator: ","}, "3,48"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(decimal.RequireFromString(tc.amount), tc.format))
		})
	}
}

func TestSum(t *testing.T) {
	total := Sum(decimal.RequireFromString("1.14"), decimal.RequireFromString("2.34"))
	assert.Equal(t, "3.48", total.StringFixed(2))
	assert.True(t, Sum().IsZero())
}
