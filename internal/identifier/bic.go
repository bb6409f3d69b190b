package identifier

import (
	"fmt"
	"regexp"
)

var bicPattern = regexp.MustCompile(`^[A-Z]{6}[A-Z2-9][A-NP-Z0-9]([A-Z0-9]{3})?$`)

// ValidateBIC normalizes raw and checks it against the BIC grammar. There is
// no checksum for BICs.
func ValidateBIC(raw string) (string, error) {
	bic := compact(raw)
	if !bicPattern.MatchString(bic) {
		return "", fmt.Errorf("BIC '%s': %w", raw, ErrInvalidFormat)
	}
	return bic, nil
}

// BICCountry returns the country code of a BIC (positions 5 and 6).
func BICCountry(bic string) string {
	return country(compact(bic), 4)
}
