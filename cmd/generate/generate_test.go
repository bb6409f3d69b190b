package generate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sepa-pain/internal/batch"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
	"fjacquet/sepa-pain/internal/store"
)

var testTime = time.Date(2014, time.October, 19, 0, 38, 44, 0, time.UTC)

const debitYAML = `
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
`

const transferCSV = `pmtInfId;owner;ownerIban;ownerBic;pmtId;instdAmt;name;iban;bic
P1;Name of Debtor;DE21500500009876543210;SPUEDE2UXXX;E2E-1;1.14;Name of Creditor;DE21500500001234567897;BELADEBEXXX
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "generate [files...]", Cmd.Use)
	assert.Contains(t, Cmd.Short, "pain.001/pain.008")
	assert.NotNil(t, Cmd.RunE)
	for _, name := range []string{"version", "msg-id", "initiating-party", "zip", "control-list", "multi-file", "wrap", "bundle", "quiet"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestDefaults(t *testing.T) {
	base := batch.Defaults{Version: rules.CT00100303, InitgPty: "Config Initiator"}

	got, err := Defaults(base, Flags{})
	require.NoError(t, err)
	assert.Equal(t, base, got)

	got, err = Defaults(base, Flags{Version: "008.001.08", InitgPty: "Flag Initiator"})
	require.NoError(t, err)
	assert.Equal(t, rules.DD00800108, got.Version)
	assert.Equal(t, "Flag Initiator", got.InitgPty)

	_, err = Defaults(base, Flags{Version: "pain.999"})
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	base := batch.Options{MultiFile: true}
	base.Output.ControlList = true

	cmd := &cobra.Command{}
	cmd.Flags().Bool("zip", false, "")
	cmd.Flags().Bool("multi-file", false, "")
	require.NoError(t, cmd.Flags().Set("zip", "true"))
	require.NoError(t, cmd.Flags().Set("multi-file", "false"))

	got := Options(base, cmd, Flags{Zip: true, MultiFile: false, ControlList: false})
	assert.True(t, got.Output.Zip)
	assert.False(t, got.MultiFile)
	assert.True(t, got.Output.ControlList, "unset flags keep the configured value")

	assert.Equal(t, base, Options(base, nil, Flags{Zip: true}))
}

func TestReadCSVBatch(t *testing.T) {
	path := writeInput(t, t.TempDir(), "rows.csv", transferCSV)

	b, err := ReadCSVBatch(path, CSVInput{
		Defaults:  batch.Defaults{Version: rules.CT00100103},
		MsgID:     "MSG-CSV-1",
		Delimiter: ';',
	})
	require.NoError(t, err)
	assert.Equal(t, "pain.001.001.03", b.Version)
	assert.Equal(t, "MSG-CSV-1", b.MsgID)
	require.Len(t, b.Collections, 1)
	assert.Equal(t, 1, b.PaymentCount())

	empty := writeInput(t, t.TempDir(), "empty.csv", "pmtInfId;pmtId\n")
	_, err = ReadCSVBatch(empty, CSVInput{Defaults: batch.Defaults{Version: rules.CT00100103}, Delimiter: ';'})
	var inputErr *sepaerror.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, empty, inputErr.FilePath)
	assert.Equal(t, "no payment rows", inputErr.Reason)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	csvPath := writeInput(t, dir, "rows.csv", transferCSV)
	yamlPath := writeInput(t, dir, "batch.yaml", debitYAML)
	badPath := writeInput(t, dir, "bad.csv", "pmtInfId;pmtId\n;E2E-1\n")

	defaults := batch.Defaults{Version: rules.CT00100103, InitgPty: "Initiator Name"}
	proc := batch.NewProcessor(nil, store.NewBatchStore("", nil), defaults,
		batch.Options{Clock: dateutils.FixedClock(testTime)})

	results := Generate(proc, []string{csvPath, yamlPath, badPath}, CSVInput{
		Defaults:  defaults,
		MsgID:     "MSG-CSV-1",
		Delimiter: ';',
	})
	require.Len(t, results, 3)

	require.NoError(t, results[0].Err)
	assert.Equal(t, csvPath, results[0].File)
	assert.Equal(t, "MSG-CSV-1.xml", results[0].Files[0].Name)
	assert.Equal(t, "1.14", results[0].Summary.ControlSum.StringFixed(2))

	require.NoError(t, results[1].Err)
	assert.Equal(t, yamlPath, results[1].File)
	assert.Equal(t, rules.DD00800102, results[1].Summary.Version)

	require.Error(t, results[2].Err)
	assert.Contains(t, results[2].Err.Error(), "missing pmtInfId")
	var inputErr *sepaerror.InputError
	require.True(t, errors.As(results[2].Err, &inputErr))
	assert.Equal(t, badPath, inputErr.FilePath)
}
