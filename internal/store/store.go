// Package store loads and saves the YAML batch files that describe payment
// documents, and the optional IBAN/BIC country table.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/sepaerror"
)

// Batch is one payment document in its file form.
type Batch struct {
	Version    string `yaml:"version,omitempty"`
	InitgPty   string `yaml:"initgPty,omitempty"`
	MsgID      string `yaml:"msgId,omitempty"`
	InitgPtyID string `yaml:"initgPtyId,omitempty"`
	OrgID      OrgID  `yaml:"orgId,omitempty"`

	Collections []Collection `yaml:"collections"`
}

// OrgID holds the two mutually exclusive organisation identifiers.
type OrgID struct {
	ID  string `yaml:"id,omitempty"`
	BOB string `yaml:"bob,omitempty"`
}

// Collection is a payment collection with its payments. Collection fields
// sit next to the payments key and keep whatever case the file uses.
type Collection struct {
	Fields   map[string]any   `yaml:",inline"`
	Payments []map[string]any `yaml:"payments"`
}

// PaymentCount is the number of payments over all collections.
func (b *Batch) PaymentCount() int {
	n := 0
	for _, c := range b.Collections {
		n += len(c.Payments)
	}
	return n
}

// BatchStore reads and writes batch files and the country table.
type BatchStore struct {
	// Dir is searched after the working directory for relative file names.
	Dir    string
	logger logging.Logger
}

// NewBatchStore creates a store rooted at dir.
func NewBatchStore(dir string, logger logging.Logger) *BatchStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &BatchStore{Dir: dir, logger: logger}
}

// FindConfigFile looks for a file in the working directory, the store
// directory, ./config and ~/.config/sepa-pain, in that order.
func (s *BatchStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{filename}
	if s.Dir != "" {
		locations = append(locations, filepath.Join(s.Dir, filename))
	}
	locations = append(locations, filepath.Join("config", filename))
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "sepa-pain", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadBatch reads a batch file.
func (s *BatchStore) LoadBatch(filename string) (*Batch, error) {
	path, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, fmt.Errorf("batch file not found: %s: %w", filename, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error reading batch file: %w", err)
	}

	batch, err := ParseBatch(data)
	if err != nil {
		return nil, &sepaerror.InputError{FilePath: path, Reason: "cannot decode batch", Err: err}
	}

	s.logger.Debug("Loaded batch file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(batch.Collections)))
	return batch, nil
}

// ParseBatch decodes a batch from YAML.
func ParseBatch(data []byte) (*Batch, error) {
	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	if len(batch.Collections) == 0 {
		return nil, errors.New("batch has no collections")
	}
	return &batch, nil
}

// SaveBatch writes b to filename, creating parent directories. Relative
// names are placed in the store directory.
func (s *BatchStore) SaveBatch(filename string, b *Batch) error {
	path := filename
	if !filepath.IsAbs(path) && s.Dir != "" {
		path = filepath.Join(s.Dir, filename)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("error marshaling batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing batch file: %w", err)
	}

	s.logger.Debug("Saved batch file",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(b.Collections)))
	return nil
}

// LoadCountryTable reads extra IBAN to BIC country mappings and merges them
// into the default table. An empty filename or a missing file yields the
// default table.
func (s *BatchStore) LoadCountryTable(filename string) (identifier.CountryTable, error) {
	defaults := identifier.DefaultCountryTable()
	if filename == "" {
		return defaults, nil
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Warn("Country table not found, using defaults", logging.F(logging.FieldFile, filename))
		return defaults, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error reading country table: %w", err)
	}

	var extra identifier.CountryTable
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("error parsing country table: %w", err)
	}

	s.logger.Debug("Loaded country table",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(extra)))
	return defaults.Merge(extra), nil
}
