package fields

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Flags tune the sanitizer.
type Flags uint8

const (
	// FlagGermanReplacement writes umlauts as ae, oe and ue instead of
	// dropping the diaeresis.
	FlagGermanReplacement Flags = 1 << iota
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

var (
	// letters that do not decompose into a base letter plus a mark
	specialLetters = strings.NewReplacer(
		"ø", "o", "Ø", "O",
		"æ", "ae", "Æ", "AE",
		"œ", "oe", "Œ", "OE",
		"ß", "ss", "ẞ", "SS",
		"đ", "d", "Đ", "D",
		"ł", "l", "Ł", "L",
	)

	germanUmlauts = strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue",
		"Ä", "AE", "Ö", "OE", "Ü", "UE",
	)

	greekLetters = strings.NewReplacer(
		"Α", "A", "Β", "V", "Γ", "G", "Δ", "D", "Ε", "E", "Ζ", "Z",
		"Η", "I", "Θ", "TH", "Ι", "I", "Κ", "K", "Λ", "L", "Μ", "M",
		"Ν", "N", "Ξ", "X", "Ο", "O", "Π", "P", "Ρ", "R", "Σ", "S",
		"Τ", "T", "Υ", "Y", "Φ", "F", "Χ", "CH", "Ψ", "PS", "Ω", "O",
		"α", "a", "β", "v", "γ", "g", "δ", "d", "ε", "e", "ζ", "z",
		"η", "i", "θ", "th", "ι", "i", "κ", "k", "λ", "l", "μ", "m",
		"ν", "n", "ξ", "x", "ο", "o", "π", "p", "ρ", "r", "ς", "s",
		"σ", "s", "τ", "t", "υ", "y", "φ", "f", "χ", "ch", "ψ", "ps",
		"ω", "o", "ϒ", "y",
	)

	punctuation = strings.NewReplacer(
		"[", "(", "]", ")", "{", "(", "}", ")",
		`\`, "/", "|", "/", "~", "-", "_", "-",
		"`", "'", "¿", "?", "€", "E",
	)

	disallowed = regexp.MustCompile(`[^a-zA-Z0-9/\-?:().,'+\s]`)
)

// SanitizeText rewrites s into the SEPA character set and cuts it to maxLen
// characters. A maxLen of zero or less disables truncation.
func SanitizeText(s string, maxLen int, flags Flags) string {
	s = strings.ReplaceAll(s, "&", "")
	s = norm.NFC.String(s)
	s = specialLetters.Replace(s)
	if flags.Has(FlagGermanReplacement) {
		s = germanUmlauts.Replace(s)
	}
	s = stripMarks(s)
	s = greekLetters.Replace(s)
	s = punctuation.Replace(s)
	s = disallowed.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimSpace(s[:maxLen])
	}
	return s
}

// stripMarks removes combining marks after canonical decomposition, turning
// é into e and Ά into Α.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
