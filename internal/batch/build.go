// Package batch turns batch files into payment documents and processes
// several files at a time.
package batch

import (
	"strings"

	"fjacquet/sepa-pain/internal/document"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
	"fjacquet/sepa-pain/internal/store"
)

// Defaults fill in header values a batch file leaves out.
type Defaults struct {
	Version    rules.Version
	InitgPty   string
	InitgPtyID string
}

// Build creates a document from b. Values set in the batch take precedence
// over defaults. Collection and payment failures are returned as a
// *sepaerror.PositionError counting from one.
func Build(b *store.Batch, defaults Defaults, opts ...document.Option) (*document.Document, error) {
	version := defaults.Version
	if strings.TrimSpace(b.Version) != "" {
		v, err := rules.ParseVersion(b.Version)
		if err != nil {
			return nil, err
		}
		version = v
	}

	all := append([]document.Option{}, opts...)
	if id := firstNonEmpty(b.InitgPtyID, defaults.InitgPtyID); id != "" {
		all = append(all, document.WithInitiatingPartyID(id))
	}
	if b.OrgID.ID != "" {
		all = append(all, document.WithOrganizationID(b.OrgID.ID))
	}
	if b.OrgID.BOB != "" {
		all = append(all, document.WithOrganizationBIC(b.OrgID.BOB))
	}

	d, err := document.New(version, firstNonEmpty(b.InitgPty, defaults.InitgPty), b.MsgID, all...)
	if err != nil {
		return nil, err
	}

	for i, c := range b.Collections {
		coll, err := d.AddCollection(c.Fields)
		if err != nil {
			return nil, &sepaerror.PositionError{Collection: i + 1, Err: err}
		}
		for j, pay := range c.Payments {
			if err := coll.AddPayment(pay); err != nil {
				return nil, &sepaerror.PositionError{Collection: i + 1, Payment: j + 1, Err: err}
			}
		}
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
