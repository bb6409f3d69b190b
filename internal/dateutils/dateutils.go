// Package dateutils provides the date layouts and clock used when building
// payment documents.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts used in payment documents and control lists
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateTimeLayoutISO  = "2006-01-02T15:04:05"
)

// InputDateFormats is the list of formats accepted for date fields, in the
// order they are tried
var InputDateFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
}

// Clock returns the current time. Documents and collections take a Clock so
// that creation timestamps and date-dependent rules are reproducible.
type Clock func() time.Time

// SystemClock reads the local wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Now returns c(), falling back to the system clock when c is nil.
func (c Clock) Now() time.Time {
	if c == nil {
		return SystemClock()
	}
	return c()
}

// Today returns the calendar day of c.Now() at midnight in its location.
func (c Clock) Today() time.Time {
	return StartOfDay(c.Now())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses an ISO or European date and returns the parsed time and the
// detected format
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range InputDateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// NormalizeDate returns dateStr in YYYY-MM-DD form. European DD.MM.YYYY input
// is converted; impossible calendar dates are rejected.
func NormalizeDate(dateStr string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// NormalizeDateTime checks dateStr against YYYY-MM-DDTHH:MM:SS.
func NormalizeDateTime(dateStr string) (string, error) {
	dateStr = strings.TrimSpace(dateStr)
	t, err := time.Parse(DateTimeLayoutISO, dateStr)
	if err != nil {
		return "", fmt.Errorf("unable to parse date-time: %s", dateStr)
	}
	return t.Format(DateTimeLayoutISO), nil
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToISODateTime formats a time.Time value as YYYY-MM-DDTHH:MM:SS without zone
func ToISODateTime(date time.Time) string {
	return date.Format(DateTimeLayoutISO)
}
