package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		hasError bool
	}{
		{"ISO", "2010-04-12", "2010-04-12", false},
		{"European", "12.04.2010", "2010-04-12", false},
		{"Whitespace", " 2010-04-12 ", "2010-04-12", false},
		{"Impossible day", "2010-02-30", "", true},
		{"European impossible month", "12.13.2010", "", true},
		{"US format rejected", "04/12/2010", "", true},
		{"Empty", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeDate(tc.input)
			if tc.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseDateDetectsFormat(t *testing.T) {
	_, format, err := ParseDate("19.10.2014")
	require.NoError(t, err)
	assert.Equal(t, DateLayoutEuropean, format)
}

func TestNormalizeDateTime(t *testing.T) {
	got, err := NormalizeDateTime("2014-10-19T00:38:44")
	require.NoError(t, err)
	assert.Equal(t, "2014-10-19T00:38:44", got)

	_, err = NormalizeDateTime("2014-10-19 00:38:44")
	assert.Error(t, err)
}

func TestClock(t *testing.T) {
	fixed := time.Date(2014, 10, 19, 0, 38, 44, 0, time.UTC)
	clock := FixedClock(fixed)

	assert.Equal(t, fixed, clock.Now())
	assert.Equal(t, time.Date(2014, 10, 19, 0, 0, 0, 0, time.UTC), clock.Today())
	assert.Equal(t, "2014-10-19T00:38:44", ToISODateTime(clock.Now()))

	var none Clock
	assert.False(t, none.Now().IsZero())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2014, 10, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2014-10-20", FormatDate(d, ""))
	assert.Equal(t, "20.10.2014", FormatDate(d, DateLayoutEuropean))
	assert.Equal(t, "2014-10-20", ToISODate(d))
}
