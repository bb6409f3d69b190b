// Package sepaerror defines the errors raised while validating and assembling
// payment instruction documents.
package sepaerror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDocument is returned when a document without payments is serialized.
	ErrEmptyDocument = errors.New("document contains no payments")

	// ErrAmbiguousOrganizationID is returned when both an organisation id and a BIC/BEI are given.
	ErrAmbiguousOrganizationID = errors.New("organisation id and BIC/BEI cannot be used together")
)

// MissingRequiredFieldError lists required fields that were absent or empty.
type MissingRequiredFieldError struct {
	Scope  string
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field(s) %s", e.Scope, strings.Join(e.Fields, ", "))
}

// InvalidFieldValueError lists every field that failed validation, even after sanitizing.
type InvalidFieldValueError struct {
	Scope  string
	Fields []string
}

func (e *InvalidFieldValueError) Error() string {
	return fmt.Sprintf("%s: invalid value(s) for %s", e.Scope, strings.Join(e.Fields, ", "))
}

// Has reports whether name is among the failing fields.
func (e *InvalidFieldValueError) Has(name string) bool {
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// MissingAmendmentDetailError is returned when an amended mandate carries no original mandate detail.
type MissingAmendmentDetailError struct {
	Accepted []string
}

func (e *MissingAmendmentDetailError) Error() string {
	return fmt.Sprintf("amdmntInd is 'true' but none of %s is set", strings.Join(e.Accepted, ", "))
}

// InvalidSmndaSequenceError is returned when SMNDA is used with a sequence type the version rejects.
type InvalidSmndaSequenceError struct {
	SeqTp   string
	Allowed []string
}

func (e *InvalidSmndaSequenceError) Error() string {
	return fmt.Sprintf("orgnlDbtrAgt 'SMNDA' requires seqTp %s, got '%s'",
		strings.Join(e.Allowed, " or "), e.SeqTp)
}

// IbanBicMismatchError is returned when an IBAN and a BIC belong to different countries.
type IbanBicMismatchError struct {
	IBAN string
	BIC  string
}

func (e *IbanBicMismatchError) Error() string {
	return fmt.Sprintf("IBAN '%s' and BIC '%s' do not belong to each other", e.IBAN, e.BIC)
}

// UnsupportedSchemaVersionError is returned for an unknown schema version.
type UnsupportedSchemaVersionError struct {
	Version string
}

func (e *UnsupportedSchemaVersionError) Error() string {
	return fmt.Sprintf("unsupported schema version '%s'", e.Version)
}

// InputError wraps a failure while reading a batch input file.
type InputError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid input %s: %s", e.FilePath, e.Reason)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// PositionError attaches a collection or payment position (1-based) to an error.
type PositionError struct {
	Collection int
	Payment    int
	Err        error
}

func (e *PositionError) Error() string {
	if e.Payment > 0 {
		return fmt.Sprintf("collection %d, payment %d: %v", e.Collection, e.Payment, e.Err)
	}
	return fmt.Sprintf("collection %d: %v", e.Collection, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}
