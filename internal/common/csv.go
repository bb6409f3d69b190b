// Package common reads tabular payment input shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/store"
)

var log = logging.NewDiscardLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// PaymentRow is one line of a payment CSV file. The collection columns are
// repeated on every row and only read from the first row of each pmtInfId.
type PaymentRow struct {
	PmtInfID      string `csv:"pmtInfId"`
	Owner         string `csv:"owner"`
	OwnerIBAN     string `csv:"ownerIban"`
	OwnerBIC      string `csv:"ownerBic"`
	Ccy           string `csv:"ccy"`
	RequestedDate string `csv:"requestedDate"`
	CI            string `csv:"ci"`
	LclInstrm     string `csv:"lclInstrm"`
	SeqTp         string `csv:"seqTp"`

	PmtID     string `csv:"pmtId"`
	InstdAmt  string `csv:"instdAmt"`
	Name      string `csv:"name"`
	IBAN      string `csv:"iban"`
	BIC       string `csv:"bic"`
	MndtID    string `csv:"mndtId"`
	DtOfSgntr string `csv:"dtOfSgntr"`
	Purp      string `csv:"purp"`
	RmtInf    string `csv:"rmtInf"`
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv
// TCSVRow is the struct type that maps to the CSV columns
func ReadCSVFile[TCSVRow any](filePath string, delimiter rune) ([]TCSVRow, error) {
	log.Info("Reading CSV file", logging.F(logging.FieldFile, filePath))

	file, err := os.Open(filePath) // #nosec G304 -- path comes from the command line
	if err != nil {
		log.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = delimiter
	reader.TrimLeadingSpace = true

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		log.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.Info("Successfully read CSV data", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// ReadPaymentCSV reads payment rows from filePath.
func ReadPaymentCSV(filePath string, delimiter rune) ([]PaymentRow, error) {
	return ReadCSVFile[PaymentRow](filePath, delimiter)
}

// GroupPayments turns payment rows into collections, one per pmtInfId in
// order of first appearance. Party columns are mapped to the debtor or
// creditor fields of the profile.
func GroupPayments(profile rules.Profile, rows []PaymentRow) ([]store.Collection, error) {
	var out []store.Collection
	index := make(map[string]int)

	for i, row := range rows {
		id := strings.TrimSpace(row.PmtInfID)
		if id == "" {
			return nil, fmt.Errorf("row %d: missing pmtInfId", i+2)
		}

		pos, ok := index[id]
		if !ok {
			pos = len(out)
			index[id] = pos
			out = append(out, store.Collection{Fields: collectionFields(profile, row)})
		}
		out[pos].Payments = append(out[pos].Payments, paymentFields(profile, row))
	}

	log.Debug("Grouped payment rows",
		logging.F(logging.FieldCount, len(rows)),
		logging.F(logging.FieldCollection, len(out)))
	return out, nil
}

func collectionFields(p rules.Profile, row PaymentRow) map[string]any {
	m := map[string]any{}
	put(m, fields.PmtInfID, row.PmtInfID)
	put(m, p.OwnerName(), row.Owner)
	put(m, fields.IBAN, row.OwnerIBAN)
	put(m, fields.BIC, row.OwnerBIC)
	put(m, fields.Ccy, row.Ccy)
	put(m, p.RequestedDateField(), row.RequestedDate)
	if p.Kind == rules.DirectDebit {
		put(m, fields.CI, row.CI)
		put(m, fields.LclInstrm, row.LclInstrm)
		put(m, fields.SeqTp, row.SeqTp)
	}
	return m
}

func paymentFields(p rules.Profile, row PaymentRow) map[string]any {
	m := map[string]any{}
	put(m, fields.PmtID, row.PmtID)
	put(m, fields.InstdAmt, row.InstdAmt)
	put(m, p.CounterpartyName(), row.Name)
	put(m, fields.IBAN, row.IBAN)
	put(m, fields.BIC, row.BIC)
	put(m, fields.Purp, row.Purp)
	put(m, fields.RmtInf, row.RmtInf)
	if p.Kind == rules.DirectDebit {
		put(m, fields.MndtID, row.MndtID)
		put(m, fields.DtOfSgntr, row.DtOfSgntr)
	}
	return m
}

func put(m map[string]any, name, value string) {
	if v := strings.TrimSpace(value); v != "" {
		m[name] = v
	}
}
