// Package rules resolves the per schema version business rules of pain.001
// credit transfers and pain.008 direct debits.
package rules

import (
	"sort"
	"strings"

	"fjacquet/sepa-pain/internal/sepaerror"
)

// Version identifies one supported pain schema variant.
type Version string

// Supported schema versions.
const (
	CT00100103 Version = "pain.001.001.03"
	CT00100203 Version = "pain.001.002.03"
	CT00100303 Version = "pain.001.003.03"
	CT00100109 Version = "pain.001.001.09"

	DD00800102            Version = "pain.008.001.02"
	DD00800102Austrian003 Version = "pain.008.001.02.austrian.003"
	DD00800202            Version = "pain.008.002.02"
	DD00800302            Version = "pain.008.003.02"
	DD00800108            Version = "pain.008.001.08"
)

// Kind is the payment type a version describes.
type Kind int

const (
	CreditTransfer Kind = iota
	DirectDebit
)

func (k Kind) String() string {
	if k == DirectDebit {
		return "Direct Debit"
	}
	return "Credit Transfer"
}

// ParseVersion accepts a version name in any case, with or without a
// leading "pain." prefix.
func ParseVersion(s string) (Version, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(v, "pain.") {
		v = "pain." + v
	}
	if _, ok := profiles[Version(v)]; !ok {
		return "", &sepaerror.UnsupportedSchemaVersionError{Version: s}
	}
	return Version(v), nil
}

// Versions lists the supported versions in sorted order.
func Versions() []Version {
	out := make([]Version, 0, len(profiles))
	for v := range profiles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v Version) String() string {
	return string(v)
}
