package document

import (
	"time"

	"fjacquet/sepa-pain/internal/bundle"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
)

// MultiFile collects several documents, possibly of different versions, and
// bundles their output into one archive.
type MultiFile struct {
	docs []*Document
}

// NewMultiFile returns an empty MultiFile.
func NewMultiFile() *MultiFile {
	return &MultiFile{}
}

// AddFile creates a document and adds it to m.
func (m *MultiFile) AddFile(version rules.Version, initgPty, msgID string, opts ...Option) (*Document, error) {
	d, err := New(version, initgPty, msgID, opts...)
	if err != nil {
		return nil, err
	}
	m.docs = append(m.docs, d)
	return d, nil
}

// Add adds an existing document.
func (m *MultiFile) Add(d *Document) {
	m.docs = append(m.docs, d)
}

// Documents returns the documents in insertion order.
func (m *MultiFile) Documents() []*Document {
	out := make([]*Document, len(m.docs))
	copy(out, m.docs)
	return out
}

// Zip renders every document with opts and returns a single archive holding
// all generated files. The Zip field of opts is ignored. The archive
// timestamp comes from the clock of the first document.
func (m *MultiFile) Zip(opts OutputOptions) ([]byte, error) {
	if len(m.docs) == 0 {
		return nil, sepaerror.ErrEmptyDocument
	}
	return m.ZipAt(opts, m.docs[0].clock.Now())
}

// ZipAt is Zip with an explicit creation time used for every document.
func (m *MultiFile) ZipAt(opts OutputOptions, now time.Time) ([]byte, error) {
	if len(m.docs) == 0 {
		return nil, sepaerror.ErrEmptyDocument
	}
	opts.Zip = false

	var files []File
	for _, d := range m.docs {
		out, err := d.OutputAt(opts, now)
		if err != nil {
			return nil, err
		}
		files = append(files, out...)
	}
	return bundle.Zip(files, now)
}
