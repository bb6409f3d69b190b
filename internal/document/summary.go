package document

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/rules"
)

// Summary is a read-only overview of a document for reporting.
type Summary struct {
	Version     rules.Version
	MessageID   string
	Initiator   string
	Count       int
	ControlSum  decimal.Decimal
	Collections []collection.Snapshot
}

// Summary returns the document totals and a snapshot of every non-empty
// collection as of now.
func (d *Document) Summary(now time.Time) Summary {
	s := Summary{
		Version:    d.profile.Version,
		MessageID:  d.msgID,
		Initiator:  d.initgPty,
		Count:      d.TransactionCount(),
		ControlSum: d.ControlSum(),
	}
	for _, c := range d.collections {
		if c.IsEmpty() {
			continue
		}
		s.Collections = append(s.Collections, c.Snapshot(now))
	}
	return s
}
