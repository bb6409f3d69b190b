package identifier

// NotAvailableBIC is the placeholder BIC used by Austrian direct debit files.
const NotAvailableBIC = "NOTAVAIL"

// eeaCountries are the member states of the European Economic Area.
var eeaCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "CY": true, "CZ": true, "DE": true,
	"DK": true, "EE": true, "ES": true, "FI": true, "FR": true, "GR": true,
	"HR": true, "HU": true, "IE": true, "IT": true, "LT": true, "LU": true,
	"LV": true, "MT": true, "NL": true, "PL": true, "PT": true, "RO": true,
	"SE": true, "SI": true, "SK": true,
	"IS": true, "LI": true, "NO": true,
}

// CountryTable maps an IBAN country code to the additional BIC country codes
// accepted for it. A BIC whose country equals the IBAN country always matches.
type CountryTable map[string][]string

// DefaultCountryTable covers territories whose banks use a BIC country
// different from the IBAN country.
func DefaultCountryTable() CountryTable {
	return CountryTable{
		"FR": {"GF", "GP", "MQ", "RE", "YT", "NC", "PF", "PM", "TF", "WF", "BL", "MF", "MC"},
		"GB": {"GG", "JE", "IM"},
		"FI": {"AX"},
	}
}

// CrossCheckIBANBIC reports whether iban and bic plausibly belong together.
// The result is advisory: false only marks the pair as suspicious.
func (t CountryTable) CrossCheckIBANBIC(iban, bic string) bool {
	bic = compact(bic)
	if bic == NotAvailableBIC {
		return true
	}
	ibanCountry := IBANCountry(iban)
	bicCountry := BICCountry(bic)
	if ibanCountry == "" || bicCountry == "" {
		return false
	}
	if ibanCountry == bicCountry {
		return true
	}
	for _, c := range t[ibanCountry] {
		if c == bicCountry {
			return true
		}
	}
	return false
}

// Merge returns a copy of t extended with the entries of other.
func (t CountryTable) Merge(other CountryTable) CountryTable {
	merged := make(CountryTable, len(t)+len(other))
	for k, v := range t {
		merged[k] = append([]string(nil), v...)
	}
	for k, v := range other {
		merged[k] = append(merged[k], v...)
	}
	return merged
}

// CrossCheckIBANBIC checks iban and bic against DefaultCountryTable.
func CrossCheckIBANBIC(iban, bic string) bool {
	return DefaultCountryTable().CrossCheckIBANBIC(iban, bic)
}

// IsNational reports whether both IBANs belong to the same country.
func IsNational(iban1, iban2 string) bool {
	c := IBANCountry(iban1)
	return c != "" && c == IBANCountry(iban2)
}

// IsEEA reports whether both IBANs belong to EEA countries.
func IsEEA(iban1, iban2 string) bool {
	return eeaCountries[IBANCountry(iban1)] && eeaCountries[IBANCountry(iban2)]
}
