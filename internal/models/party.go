package models

import (
	"fmt"
	"strings"
)

// Party is an account holder as shown in control lists: a debtor or
// creditor name with the account and agent it is reached through.
type Party struct {
	Name string `json:"name" yaml:"name" csv:"name"`
	IBAN string `json:"iban" yaml:"iban" csv:"iban"`
	BIC  string `json:"bic,omitempty" yaml:"bic,omitempty" csv:"bic"`
}

// NewParty creates a new Party instance
func NewParty(name, iban, bic string) Party {
	return Party{
		Name: strings.TrimSpace(name),
		IBAN: strings.TrimSpace(iban),
		BIC:  strings.TrimSpace(bic),
	}
}

// IsEmpty returns true if name, IBAN and BIC are all empty
func (p Party) IsEmpty() bool {
	return p.Name == "" && p.IBAN == "" && p.BIC == ""
}

// String returns a string representation of the party
func (p Party) String() string {
	switch {
	case p.Name != "" && p.IBAN != "" && p.BIC != "":
		return fmt.Sprintf("%s (%s, %s)", p.Name, p.IBAN, p.BIC)
	case p.Name != "" && p.IBAN != "":
		return fmt.Sprintf("%s (%s)", p.Name, p.IBAN)
	case p.Name != "":
		return p.Name
	default:
		return p.IBAN
	}
}
