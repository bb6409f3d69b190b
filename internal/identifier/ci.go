package identifier

import (
	"fmt"
	"regexp"
)

var ciPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}([A-Z0-9]|[+?/\-:().,']){3}([A-Z0-9]|[+?/\-:().,']){1,28}$`)

// ValidateCreditorIdentifier normalizes a SEPA Creditor Identifier and checks
// it. The business code (positions 5-7) is not part of the checksum; the
// national identifier followed by country code and check digits goes through
// the same MOD 97-10 routine as an IBAN.
func ValidateCreditorIdentifier(raw string) (string, error) {
	ci := compact(raw)
	if !ciPattern.MatchString(ci) {
		return "", fmt.Errorf("creditor identifier '%s': %w", raw, ErrInvalidFormat)
	}
	if !validMod97(ci[7:] + ci[:4]) {
		return "", fmt.Errorf("creditor identifier '%s': %w", raw, ErrInvalidChecksum)
	}
	return ci, nil
}
