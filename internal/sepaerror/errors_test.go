package sepaerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "missing required fields",
			err:      &MissingRequiredFieldError{Scope: "collection", Fields: []string{"pmtinfid", "iban"}},
			expected: "collection: missing required field(s) pmtinfid, iban",
		},
		{
			name:     "invalid field values",
			err:      &InvalidFieldValueError{Scope: "payment", Fields: []string{"bic"}},
			expected: "payment: invalid value(s) for bic",
		},
		{
			name:     "missing amendment detail",
			err:      &MissingAmendmentDetailError{Accepted: []string{"orgnlmndtid", "orgnldbtragt"}},
			expected: "amdmntInd is 'true' but none of orgnlmndtid, orgnldbtragt is set",
		},
		{
			name:     "smnda sequence",
			err:      &InvalidSmndaSequenceError{SeqTp: "OOFF", Allowed: []string{"FRST", "RCUR"}},
			expected: "orgnlDbtrAgt 'SMNDA' requires seqTp FRST or RCUR, got 'OOFF'",
		},
		{
			name:     "iban bic mismatch",
			err:      &IbanBicMismatchError{IBAN: "DE87200500001234567890", BIC: "BNPAFRPPXXX"},
			expected: "IBAN 'DE87200500001234567890' and BIC 'BNPAFRPPXXX' do not belong to each other",
		},
		{
			name:     "unsupported version",
			err:      &UnsupportedSchemaVersionError{Version: "pain.001.001.99"},
			expected: "unsupported schema version 'pain.001.001.99'",
		},
		{
			name:     "input error without cause",
			err:      &InputError{FilePath: "batch.yaml", Reason: "no collections"},
			expected: "invalid input batch.yaml: no collections",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestInvalidFieldValueError_Has(t *testing.T) {
	err := &InvalidFieldValueError{Scope: "payment", Fields: []string{"iban", "instdamt"}}

	assert.True(t, err.Has("instdamt"))
	assert.False(t, err.Has("bic"))
}

func TestPositionError_Unwrap(t *testing.T) {
	wrapped := &PositionError{Collection: 2, Payment: 3, Err: ErrEmptyDocument}

	assert.Equal(t, "collection 2, payment 3: document contains no payments", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrEmptyDocument))

	collectionOnly := &PositionError{Collection: 1, Err: &MissingRequiredFieldError{Scope: "collection", Fields: []string{"ci"}}}
	assert.Equal(t, "collection 1: collection: missing required field(s) ci", collectionOnly.Error())

	var missing *MissingRequiredFieldError
	assert.True(t, errors.As(fmt.Errorf("add collection: %w", collectionOnly), &missing))
	assert.Equal(t, []string{"ci"}, missing.Fields)
}

func TestInputError_Unwrap(t *testing.T) {
	cause := errors.New("yaml: line 3: mapping values are not allowed")
	err := &InputError{FilePath: "batch.yaml", Reason: "cannot decode", Err: cause}

	assert.Equal(t, "invalid input batch.yaml: cannot decode: yaml: line 3: mapping values are not allowed", err.Error())
	assert.True(t, errors.Is(err, cause))
}
