package fields

import (
	"strings"

	"fjacquet/sepa-pain/internal/models"
)

// checkAddress validates a postal address against form, sanitizing text
// parts when sanitize is set. It returns the accepted copy.
func checkAddress(a *models.PostalAddress, form AddressForm, sanitize bool, flags Flags) (*models.PostalAddress, bool) {
	if a == nil {
		return nil, true
	}
	addr := a.Clone()
	if addr.IsEmpty() {
		return addr, true
	}

	switch form {
	case AddressNone:
		return a, false
	case AddressLines:
		if addr.HasStructuredParts() || len(addr.AdrLine) > MaxAddressLines {
			return a, false
		}
		for i, line := range addr.AdrLine {
			v, ok := addressText(line, ShortTextLen, sanitize, flags)
			if !ok {
				return a, false
			}
			addr.AdrLine[i] = v
		}
	case AddressStructured:
		if len(addr.AdrLine) > 0 {
			return a, false
		}
		for _, p := range addr.StructuredParts() {
			if *p.Value == "" {
				continue
			}
			v, ok := addressText(*p.Value, p.MaxLen, sanitize, flags)
			if !ok {
				return a, false
			}
			*p.Value = v
		}
	}

	if addr.Ctry != "" {
		addr.Ctry = strings.ToUpper(strings.TrimSpace(addr.Ctry))
		if !country.MatchString(addr.Ctry) {
			return a, false
		}
	}
	return addr, true
}

func addressText(v string, maxLen int, sanitize bool, flags Flags) (string, bool) {
	check := text(maxLen)
	if s, ok := check(v, Options{}); ok {
		return s, true
	}
	if !sanitize {
		return v, false
	}
	return check(SanitizeText(v, maxLen, flags), Options{})
}
