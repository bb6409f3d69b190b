// Package currencyutils provides the amount parsing and money formatting used by
// payment records, control sums and control lists.
package currencyutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// MinAmount is the smallest amount accepted in a single transaction.
	MinAmount = decimal.RequireFromString("0.01")
	// MaxAmount is the largest amount accepted in a single transaction.
	MaxAmount = decimal.RequireFromString("999999999.99")

	// ErrAmountOutOfRange is returned for amounts outside [MinAmount, MaxAmount].
	ErrAmountOutOfRange = errors.New("amount out of range")
	// ErrTooManyDecimals is returned for amounts with more than two decimals.
	ErrTooManyDecimals = errors.New("amount has more than two decimals")
)

var (
	plainAmount = regexp.MustCompile(`^[0-9]+(?:[.,][0-9]+)?$`)
	// Grouping needs a decimal part with the other separator or at least two
	// group separators. A lone separator is always the decimal point.
	commaThousands  = regexp.MustCompile(`^[0-9]{1,3}(?:(?:,[0-9]{3})+\.[0-9]+|(?:,[0-9]{3}){2,})$`)
	periodThousands = regexp.MustCompile(`^[0-9]{1,3}(?:(?:\.[0-9]{3})+,[0-9]+|(?:\.[0-9]{3}){2,})$`)
)

// ParseAmount parses an amount written as "1234.56", "1234,56", "1,234.56"
// or "1.234,56". A single separator is the decimal point, so "1.140" is
// 1.14 and "1,234" is 1.234.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := StandardizeAmount(amountStr)
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts the accepted separator conventions to the form
// understood by decimal.NewFromString. Strings that match none of them are
// returned trimmed but otherwise untouched so that parsing fails on them.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	switch {
	case plainAmount.MatchString(s):
		return strings.ReplaceAll(s, ",", ".")
	case commaThousands.MatchString(s):
		return strings.ReplaceAll(s, ",", "")
	case periodThousands.MatchString(s):
		return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	}
	return s
}

// CheckTransactionAmount checks an already parsed amount against the
// precision and limits of a single SEPA transaction.
func CheckTransactionAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(2)) {
		return fmt.Errorf("%w: '%s'", ErrTooManyDecimals, amount.String())
	}
	if amount.LessThan(MinAmount) || amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: '%s'", ErrAmountOutOfRange, amount.String())
	}
	return nil
}

// ParseTransactionAmount parses an amount and checks it against the limits of
// a single SEPA transaction.
func ParseTransactionAmount(amountStr string) (decimal.Decimal, error) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero, err
	}
	if err := CheckTransactionAmount(amount); err != nil {
		return decimal.Zero, fmt.Errorf("%w (input '%s')", err, amountStr)
	}
	return amount, nil
}

// NormalizeAmount returns the two-decimal form of a valid transaction amount.
func NormalizeAmount(amountStr string) (string, error) {
	amount, err := ParseTransactionAmount(amountStr)
	if err != nil {
		return "", err
	}
	return amount.StringFixed(2), nil
}

// MoneyFormat describes how control lists print amounts.
type MoneyFormat struct {
	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	// CurrencyFormat is a fmt pattern receiving the formatted number, e.g. "%s €".
	CurrencyFormat string `mapstructure:"currency_format" yaml:"currency_format"`
}

// DefaultMoneyFormat is the German style used by banking control lists.
func DefaultMoneyFormat() MoneyFormat {
	return MoneyFormat{
		DecimalSeparator:   ",",
		ThousandsSeparator: ".",
		CurrencyFormat:     "%s €",
	}
}

// FormatAmount formats amount with two decimals using the separators and
// currency pattern of f.
func FormatAmount(amount decimal.Decimal, f MoneyFormat) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.ThousandsSeparator)
		}
		b.WriteRune(r)
	}
	b.WriteString(f.DecimalSeparator)
	b.WriteString(fracPart)

	if f.CurrencyFormat == "" {
		return b.String()
	}
	return fmt.Sprintf(f.CurrencyFormat, b.String())
}

// Sum adds amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
