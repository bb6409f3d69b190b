package identifier

import (
	"fmt"
	"regexp"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

// ValidateIBAN normalizes raw (whitespace removed, upper case) and checks its
// grammar and MOD 97-10 check digits. A valid IBAN does not have to exist.
func ValidateIBAN(raw string) (string, error) {
	iban := compact(raw)
	if !ibanPattern.MatchString(iban) {
		return "", fmt.Errorf("IBAN '%s': %w", raw, ErrInvalidFormat)
	}
	if !validMod97(iban[4:] + iban[:4]) {
		return "", fmt.Errorf("IBAN '%s': %w", raw, ErrInvalidChecksum)
	}
	return iban, nil
}

// IsValidIBAN is a convenience wrapper around ValidateIBAN.
func IsValidIBAN(raw string) bool {
	_, err := ValidateIBAN(raw)
	return err == nil
}

// country returns the two letter country code of an IBAN or BIC-like string
// starting at offset.
func country(s string, offset int) string {
	if len(s) < offset+2 {
		return ""
	}
	return s[offset : offset+2]
}

// IBANCountry returns the country code of an IBAN, or "" for short input.
func IBANCountry(iban string) string {
	return country(compact(iban), 0)
}

// FormatIBAN groups a normalized IBAN in blocks of four for display.
func FormatIBAN(iban string) string {
	iban = compact(iban)
	out := make([]byte, 0, len(iban)+len(iban)/4)
	for i := 0; i < len(iban); i++ {
		if i > 0 && i%4 == 0 {
			out = append(out, ' ')
		}
		out = append(out, iban[i])
	}
	return string(out)
}
