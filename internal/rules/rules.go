package rules

import (
	"time"

	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/sepaerror"
)

// BICRequiredThreshold is the last day on which cross-border payments under
// the 2009 rulebook versions needed a BIC.
var BICRequiredThreshold = time.Date(2016, time.January, 31, 0, 0, 0, 0, time.UTC)

// BICRequired decides whether a payment to or from paymentIBAN needs a BIC
// when its collection account is collectionIBAN. today is compared by
// calendar day.
func BICRequired(p Profile, collectionIBAN, paymentIBAN string, today time.Time) bool {
	switch p.BICRule {
	case BICAlways:
		return true
	case BICCrossBorderBeforeThreshold:
		if identifier.IsNational(collectionIBAN, paymentIBAN) {
			return false
		}
		y, m, d := today.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return !day.After(BICRequiredThreshold)
	default:
		return !identifier.IsEEA(collectionIBAN, paymentIBAN)
	}
}

// CheckAmendment enforces that an amended mandate names at least one
// original mandate detail. A missing amdmntInd counts as "false".
func CheckAmendment(p Profile, payment *fields.Record) error {
	if payment.Get(fields.AmdmntInd) != "true" {
		return nil
	}
	for _, name := range p.AmendmentFields {
		if payment.Has(name) {
			return nil
		}
	}
	return &sepaerror.MissingAmendmentDetailError{Accepted: p.AmendmentFields}
}

// CheckSMNDA enforces the sequence types allowed when the debtor changed to
// another account at the same bank.
func CheckSMNDA(p Profile, seqTp string, payment *fields.Record) error {
	if p.SMNDASequences == nil || payment.Get(fields.OrgnlDbtrAgt) != fields.SMNDA {
		return nil
	}
	for _, allowed := range p.SMNDASequences {
		if seqTp == allowed {
			return nil
		}
	}
	return &sepaerror.InvalidSmndaSequenceError{SeqTp: seqTp, Allowed: p.SMNDASequences}
}

// Fold rewrites codes the version no longer distinguishes: COR1 became
// CORE and FRST became RCUR.
func Fold(p Profile, collection *fields.Record) {
	if !p.FoldCodes {
		return
	}
	if collection.Get(fields.LclInstrm) == fields.LclCOR1 {
		collection.Set(fields.LclInstrm, fields.LclCore)
	}
	if collection.Get(fields.SeqTp) == fields.SeqTpFirst {
		collection.Set(fields.SeqTp, fields.SeqTpRcur)
	}
}

// ApplyPlaceholderBIC fills an empty bic with the version's placeholder.
func ApplyPlaceholderBIC(p Profile, rec *fields.Record) {
	if p.NoBICPlaceholder != "" && !rec.Has(fields.BIC) {
		rec.Set(fields.BIC, p.NoBICPlaceholder)
	}
}
