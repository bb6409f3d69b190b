// Package report renders control lists: the per-collection summaries handed
// to the bank alongside a payment file.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/gocarina/gocsv"

	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/logging"
)

// Supported control list formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// Options control how amounts and dates are printed.
type Options struct {
	MoneyFormat currencyutils.MoneyFormat
	DateLayout  string
	Delimiter   rune
}

// DefaultOptions prints German style amounts and DD.MM.YYYY dates.
func DefaultOptions() Options {
	return Options{
		MoneyFormat: currencyutils.DefaultMoneyFormat(),
		DateLayout:  dateutils.DateLayoutEuropean,
		Delimiter:   ',',
	}
}

// Meta is the file level information repeated on every control list.
type Meta struct {
	FileName     string
	MessageID    string
	CreationTime string
	Initiator    string
}

// ControlList is the structured form of a control list.
type ControlList struct {
	XMLName       xml.Name `json:"-" xml:"ControlList"`
	FileName      string   `json:"file_name" xml:"FileName"`
	MessageID     string   `json:"message_id" xml:"MessageId"`
	CreationTime  string   `json:"creation_date_time" xml:"CreationDateTime"`
	Initiator     string   `json:"initiating_party,omitempty" xml:"InitiatingParty,omitempty"`
	PaymentType   string   `json:"payment_type" xml:"PaymentType"`
	SchemeVersion string   `json:"scheme_version" xml:"SchemeVersion"`
	Reference     string   `json:"collection_reference" xml:"CollectionReference"`
	DueDate       string   `json:"due_date" xml:"DueDate"`
	OwnerName     string   `json:"name" xml:"Name"`
	OwnerIBAN     string   `json:"iban" xml:"IBAN"`
	OwnerBIC      string   `json:"bic,omitempty" xml:"BIC,omitempty"`
	Count         int      `json:"number_of_transactions" xml:"NumberOfTransactions"`
	ControlSum    string   `json:"control_sum" xml:"ControlSum"`
	Rows          []Row    `json:"transactions" xml:"Transactions>Transaction"`
}

// Row is one transaction line of a control list.
type Row struct {
	Name       string `csv:"Name" json:"name" xml:"Name"`
	IBAN       string `csv:"IBAN" json:"iban" xml:"IBAN"`
	BIC        string `csv:"BIC" json:"bic,omitempty" xml:"BIC,omitempty"`
	EndToEndID string `csv:"EndToEndId" json:"end_to_end_id,omitempty" xml:"EndToEndId,omitempty"`
	MandateID  string `csv:"MandateId" json:"mandate_id,omitempty" xml:"MandateId,omitempty"`
	Remittance string `csv:"Remittance" json:"remittance,omitempty" xml:"Remittance,omitempty"`
	Amount     string `csv:"Amount" json:"amount" xml:"Amount"`
}

// Generator renders control lists.
type Generator struct {
	logger logging.Logger
	opts   Options
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(logger logging.Logger, opts Options) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.DateLayout == "" {
		opts.DateLayout = dateutils.DateLayoutEuropean
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.MoneyFormat == (currencyutils.MoneyFormat{}) {
		opts.MoneyFormat = currencyutils.DefaultMoneyFormat()
	}
	return &Generator{logger: logger, opts: opts}
}

// Build converts a collection snapshot into a control list.
func (g *Generator) Build(s collection.Snapshot, meta Meta) ControlList {
	cl := ControlList{
		FileName:      meta.FileName,
		MessageID:     meta.MessageID,
		CreationTime:  meta.CreationTime,
		Initiator:     meta.Initiator,
		PaymentType:   s.Kind.String(),
		SchemeVersion: s.Version.String(),
		Reference:     s.Reference,
		DueDate:       dateutils.FormatDate(s.DueDate, g.opts.DateLayout),
		OwnerName:     s.Owner.Name,
		OwnerIBAN:     s.Owner.IBAN,
		OwnerBIC:      s.Owner.BIC,
		Count:         s.Count,
		ControlSum:    currencyutils.FormatAmount(s.ControlSum, g.opts.MoneyFormat),
	}
	for _, tx := range s.Transactions {
		cl.Rows = append(cl.Rows, Row{
			Name:       tx.Party.Name,
			IBAN:       tx.Party.IBAN,
			BIC:        tx.Party.BIC,
			EndToEndID: tx.EndToEndID,
			MandateID:  tx.MandateID,
			Remittance: tx.Remittance,
			Amount:     currencyutils.FormatAmount(tx.Amount, g.opts.MoneyFormat),
		})
	}
	return cl
}

// Generate renders a snapshot as a control list in the given format.
func (g *Generator) Generate(s collection.Snapshot, meta Meta, format string) ([]byte, error) {
	cl := g.Build(s, meta)
	switch format {
	case FormatCSV:
		return g.generateCSV(cl)
	case FormatJSON:
		return g.generateJSON(cl)
	case FormatXML:
		return g.generateXML(cl)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// generateCSV writes one line per transaction followed by a total line.
func (g *Generator) generateCSV(cl ControlList) ([]byte, error) {
	rows := append([]Row(nil), cl.Rows...)
	rows = append(rows, Row{Name: "Total", Amount: cl.ControlSum})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = g.opts.Delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		g.logger.WithError(err).Error("Failed to marshal CSV control list")
		return nil, fmt.Errorf("failed to marshal CSV control list: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) generateJSON(cl ControlList) ([]byte, error) {
	out, err := json.MarshalIndent(cl, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON control list")
		return nil, fmt.Errorf("failed to marshal JSON control list: %w", err)
	}
	return out, nil
}

func (g *Generator) generateXML(cl ControlList) ([]byte, error) {
	out, err := xml.MarshalIndent(cl, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML control list")
		return nil, fmt.Errorf("failed to marshal XML control list: %w", err)
	}
	return []byte(xml.Header + string(out)), nil
}
