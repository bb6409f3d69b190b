package rules

import (
	"fmt"

	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/sepaerror"
)

// BICRule decides when a payment must name the counterparty agent.
type BICRule int

const (
	// BICAlways requires a BIC on every payment.
	BICAlways BICRule = iota
	// BICOutsideEEA requires a BIC unless both accounts are in the EEA.
	BICOutsideEEA
	// BICCrossBorderBeforeThreshold requires a BIC for cross-border payments
	// made on or before BICRequiredThreshold.
	BICCrossBorderBeforeThreshold
)

// Agent element names.
const (
	AgentBIC   = "BIC"
	AgentBICFI = "BICFI"
)

const (
	ctNamespacePrefix = "urn:iso:std:iso:20022:tech:xsd:"
	austrianNamespace = "ISO:pain.008.001.02:APC:STUZZA:payments:003"
)

// Profile is the data-driven rule set of one schema version.
type Profile struct {
	Version   Version
	Kind      Kind
	Namespace string
	// SchemaLocation is empty when the version declares none.
	SchemaLocation string
	AgentTag       string
	BICRule        BICRule
	Address        fields.AddressForm

	// CollectionBICRequired makes bic a required collection field.
	CollectionBICRequired bool
	// NoBICPlaceholder replaces an empty bic on collections and payments.
	NoBICPlaceholder string
	// ExecutionDateChoice wraps ReqdExctnDt in a Dt or DtTm child.
	ExecutionDateChoice bool
	// PaymentUltimateDebtor emits UltmtDbtr with Nm and Id on credit
	// transfer transactions.
	PaymentUltimateDebtor bool

	// AmendmentFields are the original mandate fields; one of them must be
	// set when amdmntInd is true.
	AmendmentFields []string
	// SMNDASequences are the sequence types allowed with orgnlDbtrAgt
	// SMNDA. Nil disables the check.
	SMNDASequences []string
	// AgentAmendmentByBIC emits the original debtor agent by BIC and falls
	// back to an SMNDA account when no original IBAN is given.
	AgentAmendmentByBIC bool
	// DropOriginalAgentBIC discards orgnlDbtrAgt_bic on insertion.
	DropOriginalAgentBIC bool
	// FoldCodes rewrites COR1 to CORE and FRST to RCUR.
	FoldCodes bool
}

// original mandate fields of the 2009 rulebook versions
var legacyAmendment = []string{
	fields.OrgnlMndtID, fields.OrgnlCdtrSchmeIDNm, fields.OrgnlCdtrSchmeIDID,
	fields.OrgnlDbtrAcctIBAN, fields.OrgnlDbtrAgt,
}

var currentAmendment = []string{
	fields.OrgnlMndtID, fields.OrgnlCdtrSchmeIDNm, fields.OrgnlCdtrSchmeIDID,
	fields.OrgnlDbtrAcctIBAN, fields.OrgnlDbtrAgtBIC, fields.OrgnlDbtrAgt,
}

var profiles = map[Version]Profile{
	CT00100103: {
		Kind:                  CreditTransfer,
		AgentTag:              AgentBIC,
		BICRule:               BICOutsideEEA,
		Address:               fields.AddressLines,
		PaymentUltimateDebtor: true,
	},
	CT00100203: {
		Kind:                  CreditTransfer,
		AgentTag:              AgentBIC,
		BICRule:               BICAlways,
		Address:               fields.AddressNone,
		CollectionBICRequired: true,
	},
	CT00100303: {
		Kind:     CreditTransfer,
		AgentTag: AgentBIC,
		BICRule:  BICCrossBorderBeforeThreshold,
		Address:  fields.AddressNone,
	},
	CT00100109: {
		Kind:                  CreditTransfer,
		AgentTag:              AgentBICFI,
		BICRule:               BICOutsideEEA,
		Address:               fields.AddressStructured,
		ExecutionDateChoice:   true,
		PaymentUltimateDebtor: true,
	},
	DD00800102: {
		Kind:            DirectDebit,
		AgentTag:        AgentBIC,
		BICRule:         BICOutsideEEA,
		Address:         fields.AddressLines,
		AmendmentFields: legacyAmendment,
		SMNDASequences:  []string{fields.SeqTpFirst},
	},
	DD00800102Austrian003: {
		Kind:                 DirectDebit,
		Namespace:            austrianNamespace,
		AgentTag:             AgentBIC,
		BICRule:              BICOutsideEEA,
		Address:              fields.AddressLines,
		AmendmentFields:      legacyAmendment,
		NoBICPlaceholder:     identifier.NotAvailableBIC,
		DropOriginalAgentBIC: true,
	},
	DD00800202: {
		Kind:            DirectDebit,
		AgentTag:        AgentBIC,
		BICRule:         BICCrossBorderBeforeThreshold,
		Address:         fields.AddressLines,
		AmendmentFields: legacyAmendment,
		SMNDASequences:  []string{fields.SeqTpFirst},
	},
	DD00800302: {
		Kind:            DirectDebit,
		AgentTag:        AgentBIC,
		BICRule:         BICCrossBorderBeforeThreshold,
		Address:         fields.AddressLines,
		AmendmentFields: legacyAmendment,
		SMNDASequences:  []string{fields.SeqTpFirst},
	},
	DD00800108: {
		Kind:                DirectDebit,
		AgentTag:            AgentBICFI,
		BICRule:             BICOutsideEEA,
		Address:             fields.AddressStructured,
		AmendmentFields:     currentAmendment,
		SMNDASequences:      []string{fields.SeqTpFirst, fields.SeqTpRcur},
		AgentAmendmentByBIC: true,
		FoldCodes:           true,
	},
}

func init() {
	for v, p := range profiles {
		p.Version = v
		if p.Namespace == "" {
			p.Namespace = ctNamespacePrefix + string(v)
			p.SchemaLocation = fmt.Sprintf("%s %s.xsd", p.Namespace, v)
		}
		profiles[v] = p
	}
}

// Resolve returns the rule profile of a version.
func Resolve(v Version) (Profile, error) {
	p, ok := profiles[v]
	if !ok {
		return Profile{}, &sepaerror.UnsupportedSchemaVersionError{Version: string(v)}
	}
	return p, nil
}

// MustResolve is Resolve for versions known at compile time.
func MustResolve(v Version) Profile {
	p, err := Resolve(v)
	if err != nil {
		panic(err)
	}
	return p
}

// RootElement is the message element below Document.
func (p Profile) RootElement() string {
	if p.Kind == DirectDebit {
		return "CstmrDrctDbtInitn"
	}
	return "CstmrCdtTrfInitn"
}

// MessageType is the short message name used by container envelopes.
func (p Profile) MessageType() string {
	if p.Kind == DirectDebit {
		return "pain.008"
	}
	return "pain.001"
}

// CollectionRequired returns the required collection fields.
func (p Profile) CollectionRequired() []string {
	if p.Kind == DirectDebit {
		return []string{fields.PmtInfID, fields.LclInstrm, fields.SeqTp, fields.Cdtr, fields.IBAN, fields.CI}
	}
	req := []string{fields.PmtInfID, fields.Dbtr, fields.IBAN}
	if p.CollectionBICRequired {
		req = append(req, fields.BIC)
	}
	return req
}

// PaymentRequired returns the required payment fields.
func (p Profile) PaymentRequired() []string {
	if p.Kind == DirectDebit {
		return []string{fields.PmtID, fields.InstdAmt, fields.MndtID, fields.DtOfSgntr, fields.Dbtr, fields.IBAN}
	}
	req := []string{fields.PmtID, fields.InstdAmt, fields.IBAN, fields.Cdtr}
	if p.BICRule == BICAlways {
		req = append(req, fields.BIC)
	}
	return req
}

// CollectionOptions returns the field options for collection validation.
func (p Profile) CollectionOptions() fields.Options {
	return fields.Options{AllowEmptyBIC: !p.CollectionBICRequired, Address: p.Address}
}

// PaymentOptions returns the field options for a payment whose BIC
// necessity has already been decided.
func (p Profile) PaymentOptions(bicRequired bool) fields.Options {
	return fields.Options{AllowEmptyBIC: !bicRequired, Address: p.Address}
}

// CounterpartyName is the party field of a payment: the creditor for
// transfers and the debtor for direct debits.
func (p Profile) CounterpartyName() string {
	if p.Kind == DirectDebit {
		return fields.Dbtr
	}
	return fields.Cdtr
}

// OwnerName is the party field of a collection.
func (p Profile) OwnerName() string {
	if p.Kind == DirectDebit {
		return fields.Cdtr
	}
	return fields.Dbtr
}

// RequestedDateField is the collection field holding the execution or
// collection date.
func (p Profile) RequestedDateField() string {
	if p.Kind == DirectDebit {
		return fields.ReqdColltnDt
	}
	return fields.ReqdExctnDt
}
