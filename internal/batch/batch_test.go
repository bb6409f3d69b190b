package batch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sepa-pain/internal/bundle"
	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/document"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
	"fjacquet/sepa-pain/internal/store"
)

var testTime = time.Date(2014, time.October, 19, 0, 38, 44, 0, time.UTC)

const transferBatch = `
version: pain.001.001.03
initgPty: Initiator Name
msgId: MSG-CT-1
collections:
  - pmtInfId: P1
    dbtr: Name of Debtor
    iban: DE21500500009876543210
    bic: SPUEDE2UXXX
    reqdExctnDt: "2014-10-24"
    payments:
      - pmtId: E2E-1
        instdAmt: 1.14
        cdtr: Name of Creditor
        iban: DE21500500001234567897
        bic: BELADEBEXXX
      - pmtId: E2E-2
        instdAmt: "2.00"
        cdtr: Other Creditor
        iban: DE21500500001234567897
        bic: BELADEBEXXX
`

const debitBatch = `
version: pain.008.001.02
initgPty: Initiator Name
msgId: MSG-DD-1
collections:
  - pmtInfId: C1
    lclInstrm: CORE
    seqTp: FRST
    cdtr: Name of Creditor
    iban: DE87200500001234567890
    bic: BELADEBEXXX
    ci: DE98ZZZ09999999999
    payments:
      - pmtId: E2E-1
        instdAmt: "2.34"
        mndtId: Mandate-Id
        dtOfSgntr: "2010-04-12"
        dbtr: Name of Debtor
        iban: DE21500500001234567897
        bic: SPUEDE2UXXX
  - pmtInfId: C2
    lclInstrm: CORE
    seqTp: RCUR
    cdtr: Name of Creditor
    iban: DE87200500001234567890
    bic: BELADEBEXXX
    ci: DE98ZZZ09999999999
    reqdColltnDt: "2014-11-03"
    payments:
      - pmtId: E2E-2
        instdAmt: "10"
        mndtId: Mandate-Id-2
        dtOfSgntr: "2011-01-01"
        dbtr: Other Debtor
        iban: DE21500500001234567897
        bic: SPUEDE2UXXX
`

func parseBatch(t *testing.T, data string) *store.Batch {
	t.Helper()
	b, err := store.ParseBatch([]byte(data))
	require.NoError(t, err)
	return b
}

func newSource(t *testing.T) *store.MockBatchStore {
	t.Helper()
	return &store.MockBatchStore{Batches: map[string]*store.Batch{
		"ct.yaml": parseBatch(t, transferBatch),
		"dd.yaml": parseBatch(t, debitBatch),
	}}
}

func newProcessor(t *testing.T, opts Options) (*Processor, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	opts.Clock = dateutils.FixedClock(testTime)
	return NewProcessor(logger, newSource(t), Defaults{Version: rules.CT00100303}, opts), logger
}

func fileNames(files []bundle.File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func TestBuild(t *testing.T) {
	d, err := Build(parseBatch(t, transferBatch), Defaults{}, document.WithClock(dateutils.FixedClock(testTime)))
	require.NoError(t, err)

	assert.Equal(t, rules.CT00100103, d.Version())
	assert.Equal(t, "MSG-CT-1", d.MessageID())
	assert.Equal(t, 2, d.TransactionCount())
	assert.Equal(t, "3.14", d.ControlSum().StringFixed(2))
}

func TestBuild_Defaults(t *testing.T) {
	b := parseBatch(t, transferBatch)
	b.Version = ""
	b.InitgPty = ""

	d, err := Build(b, Defaults{Version: rules.CT00100303, InitgPty: "Default Initiator"})
	require.NoError(t, err)
	assert.Equal(t, rules.CT00100303, d.Version())
	assert.Equal(t, "Default Initiator", d.InitiatingParty())
}

func TestBuild_Errors(t *testing.T) {
	t.Run("unsupported version", func(t *testing.T) {
		b := parseBatch(t, transferBatch)
		b.Version = "pain.001.001.99"
		_, err := Build(b, Defaults{})
		var target *sepaerror.UnsupportedSchemaVersionError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("ambiguous organisation id", func(t *testing.T) {
		b := parseBatch(t, transferBatch)
		b.OrgID = store.OrgID{ID: "ORG-1", BOB: "BELADEBEXXX"}
		_, err := Build(b, Defaults{})
		assert.ErrorIs(t, err, sepaerror.ErrAmbiguousOrganizationID)
	})

	t.Run("payment position", func(t *testing.T) {
		b := parseBatch(t, transferBatch)
		delete(b.Collections[0].Payments[1], "cdtr")
		_, err := Build(b, Defaults{}, document.WithClock(dateutils.FixedClock(testTime)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "collection 1, payment 2:")
		var pos *sepaerror.PositionError
		require.True(t, errors.As(err, &pos))
		assert.Equal(t, 1, pos.Collection)
		assert.Equal(t, 2, pos.Payment)
		var target *sepaerror.MissingRequiredFieldError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("collection position", func(t *testing.T) {
		b := parseBatch(t, transferBatch)
		delete(b.Collections[0].Fields, "iban")
		_, err := Build(b, Defaults{}, document.WithClock(dateutils.FixedClock(testTime)))
		var pos *sepaerror.PositionError
		require.True(t, errors.As(err, &pos))
		assert.Equal(t, 1, pos.Collection)
		assert.Zero(t, pos.Payment)
		assert.EqualError(t, err, "collection 1: "+pos.Err.Error())
	})
}

func TestDateRange_String(t *testing.T) {
	assert.Equal(t, "", DateRange{}.String())
	assert.Equal(t, "", DateRange{Start: testTime}.String())
	assert.Equal(t, "2014-10-19_2014-10-24", DateRange{
		Start: testTime,
		End:   time.Date(2014, time.October, 24, 0, 0, 0, 0, time.UTC),
	}.String())
}

func TestDateRange_Merge(t *testing.T) {
	d1 := time.Date(2014, time.October, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2014, time.October, 10, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2014, time.October, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		a, b     DateRange
		expected DateRange
	}{
		{"empty with range", DateRange{}, DateRange{Start: d1, End: d2}, DateRange{Start: d1, End: d2}},
		{"range with empty", DateRange{Start: d1, End: d2}, DateRange{}, DateRange{Start: d1, End: d2}},
		{"extends end", DateRange{Start: d1, End: d2}, DateRange{Start: d2, End: d3}, DateRange{Start: d1, End: d3}},
		{"extends start", DateRange{Start: d2, End: d3}, DateRange{Start: d1, End: d2}, DateRange{Start: d1, End: d3}},
		{"contained", DateRange{Start: d1, End: d3}, DateRange{Start: d2, End: d2}, DateRange{Start: d1, End: d3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Merge(tt.b))
		})
	}
}

func TestDueDates(t *testing.T) {
	assert.Equal(t, DateRange{}, DueDates(nil))

	early := time.Date(2014, time.October, 20, 0, 0, 0, 0, time.UTC)
	late := time.Date(2014, time.November, 3, 0, 0, 0, 0, time.UTC)
	got := DueDates([]collection.Snapshot{{DueDate: late}, {DueDate: early}})
	assert.Equal(t, DateRange{Start: early, End: late}, got)
}

func TestProcessor_ProcessFile(t *testing.T) {
	p, logger := newProcessor(t, Options{Output: document.OutputOptions{ControlList: true}})

	res := p.ProcessFile("ct.yaml")
	require.NoError(t, res.Err)
	assert.Equal(t, "ct.yaml", res.File)
	assert.Equal(t, []string{"MSG-CT-1.xml", "MSG-CT-1.P1.ControlList.csv"}, fileNames(res.Files))
	assert.Equal(t, 2, res.Summary.Count)
	assert.Equal(t, "3.14", res.Summary.ControlSum.StringFixed(2))
	assert.Equal(t, "2014-10-24_2014-10-24", res.DueDates.String())
	assert.True(t, logger.HasEntry("INFO", "Output generated"))
}

func TestProcessor_DefaultDueDate(t *testing.T) {
	p, _ := newProcessor(t, Options{})

	res := p.ProcessFile("dd.yaml")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"MSG-DD-1.xml"}, fileNames(res.Files))
	require.Len(t, res.Summary.Collections, 2)
	assert.Equal(t, "2014-10-20_2014-11-03", res.DueDates.String())
}

func TestProcessor_MultiFile(t *testing.T) {
	p, _ := newProcessor(t, Options{MultiFile: true})

	res := p.ProcessFile("dd.yaml")
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"MSG-DD-1-001.xml", "MSG-DD-1-002.xml"}, fileNames(res.Files))

	p, _ = newProcessor(t, Options{MultiFile: true, Output: document.OutputOptions{Zip: true}})
	res = p.ProcessFile("dd.yaml")
	require.NoError(t, res.Err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, "MSG-DD-1.zip", res.Files[0].Name)

	inner, err := bundle.Unzip(res.Files[0].Data)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSG-DD-1-001.xml", "MSG-DD-1-002.xml"}, fileNames(inner))
}

func TestProcessor_Process(t *testing.T) {
	p, logger := newProcessor(t, Options{Workers: 2})

	results := p.Process([]string{"dd.yaml", "missing.yaml", "ct.yaml"})
	require.Len(t, results, 3)

	assert.Equal(t, "dd.yaml", results[0].File)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "missing.yaml", results[1].File)
	assert.Error(t, results[1].Err)
	assert.Equal(t, "ct.yaml", results[2].File)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "MSG-CT-1", results[2].Summary.MessageID)

	assert.True(t, logger.HasEntry("WARN", "Batch file failed"))
	assert.True(t, logger.HasEntry("INFO", "Processed batch files"))
	assert.Empty(t, p.Process(nil))
}

func TestProcessor_Bundle(t *testing.T) {
	p, _ := newProcessor(t, Options{})

	data, err := p.Bundle([]string{"ct.yaml", "dd.yaml"})
	require.NoError(t, err)

	files, err := bundle.Unzip(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"MSG-CT-1.xml", "MSG-DD-1.xml"}, fileNames(files))

	_, err = p.Bundle([]string{"ct.yaml", "missing.yaml"})
	assert.Error(t, err)

	_, err = p.Bundle(nil)
	assert.ErrorIs(t, err, sepaerror.ErrEmptyDocument)
}
