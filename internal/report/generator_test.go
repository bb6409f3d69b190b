package report

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/models"
	"fjacquet/sepa-pain/internal/rules"
)

func sampleSnapshot() collection.Snapshot {
	return collection.Snapshot{
		Kind:      rules.CreditTransfer,
		Version:   rules.CT00100303,
		DueDate:   time.Date(2014, time.October, 20, 0, 0, 0, 0, time.UTC),
		Reference: "PaymentCollectionID-1234",
		Owner:     models.NewParty("Name of Debtor2", "DE21500500009876543210", "SPUEDE2UXXX"),
		Currency:  "EUR",
		Transactions: []collection.Transaction{
			{
				Party:      models.NewParty("Name of Creditor", "DE21500500001234567897", "BELADEBEXXX"),
				Remittance: "Remittance Information",
				Amount:     decimal.RequireFromString("1234.5"),
				EndToEndID: "TransferID-1234-1",
			},
		},
		Count:      1,
		ControlSum: decimal.RequireFromString("1234.5"),
	}
}

var sampleMeta = Meta{
	FileName:     "MessageID-1234.xml",
	MessageID:    "MessageID-1234",
	CreationTime: "2014-10-19T00:38:44",
	Initiator:    "Initiator Name",
}

func TestGenerator_Build(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	cl := g.Build(sampleSnapshot(), sampleMeta)

	assert.Equal(t, "Credit Transfer", cl.PaymentType)
	assert.Equal(t, "pain.001.003.03", cl.SchemeVersion)
	assert.Equal(t, "20.10.2014", cl.DueDate)
	assert.Equal(t, "1.234,50 €", cl.ControlSum)
	require.Len(t, cl.Rows, 1)
	assert.Equal(t, "1.234,50 €", cl.Rows[0].Amount)
}

func TestGenerator_CSV(t *testing.T) {
	g := NewGenerator(nil, Options{
		MoneyFormat: currencyutils.MoneyFormat{DecimalSeparator: ".", ThousandsSeparator: ",", CurrencyFormat: "EUR %s"},
		DateLayout:  "2006-01-02",
		Delimiter:   ';',
	})

	out, err := g.Generate(sampleSnapshot(), sampleMeta, FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name;IBAN;BIC;EndToEndId;MandateId;Remittance;Amount", lines[0])
	assert.Equal(t, "Name of Creditor;DE21500500001234567897;BELADEBEXXX;TransferID-1234-1;;Remittance Information;EUR 1,234.50", lines[1])
	assert.Equal(t, "Total;;;;;;EUR 1,234.50", lines[2])
}

func TestGenerator_JSON(t *testing.T) {
	g := NewGenerator(logging.NewMockLogger(), DefaultOptions())
	out, err := g.Generate(sampleSnapshot(), sampleMeta, FormatJSON)
	require.NoError(t, err)

	var cl ControlList
	require.NoError(t, json.Unmarshal(out, &cl))
	assert.Equal(t, "PaymentCollectionID-1234", cl.Reference)
	assert.Equal(t, 1, cl.Count)
	assert.Equal(t, "Initiator Name", cl.Initiator)
}

func TestGenerator_XML(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	out, err := g.Generate(sampleSnapshot(), sampleMeta, FormatXML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))

	var cl ControlList
	require.NoError(t, xml.Unmarshal(out, &cl))
	require.Len(t, cl.Rows, 1)
	assert.Equal(t, "Name of Creditor", cl.Rows[0].Name)
}

func TestGenerator_UnsupportedFormat(t *testing.T) {
	g := NewGenerator(nil, DefaultOptions())
	_, err := g.Generate(sampleSnapshot(), sampleMeta, "pdf")
	assert.EqualError(t, err, "unsupported report format: pdf")
}
