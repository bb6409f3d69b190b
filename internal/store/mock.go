package store

import (
	"fmt"

	"fjacquet/sepa-pain/internal/identifier"
)

// Source is what the generate command needs from a store.
type Source interface {
	LoadBatch(filename string) (*Batch, error)
	LoadCountryTable(filename string) (identifier.CountryTable, error)
}

var (
	_ Source = (*BatchStore)(nil)
	_ Source = (*MockBatchStore)(nil)
)

// MockBatchStore is an in-memory Source for testing.
type MockBatchStore struct {
	Batches   map[string]*Batch
	Countries identifier.CountryTable

	// Error flags for testing error conditions
	LoadBatchError        error
	LoadCountryTableError error
}

// LoadBatch returns the batch registered under filename.
func (m *MockBatchStore) LoadBatch(filename string) (*Batch, error) {
	if m.LoadBatchError != nil {
		return nil, m.LoadBatchError
	}
	b, ok := m.Batches[filename]
	if !ok {
		return nil, fmt.Errorf("batch file not found: %s", filename)
	}
	return b, nil
}

// LoadCountryTable returns the mock table merged into the default one.
func (m *MockBatchStore) LoadCountryTable(string) (identifier.CountryTable, error) {
	if m.LoadCountryTableError != nil {
		return nil, m.LoadCountryTableError
	}
	return identifier.DefaultCountryTable().Merge(m.Countries), nil
}
