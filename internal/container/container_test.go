package container

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sepa-pain/internal/config"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/report"
	"fjacquet/sepa-pain/internal/rules"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.SEPA.Version = "pain.008.001.02"
	cfg.SEPA.InitiatingParty = "Initiator Name"
	cfg.SEPA.InitiatingPartyID = "DE98ZZZ09999999999"
	cfg.SEPA.CheckAndSanitize = true
	cfg.Output.FilenameTemplate = "%initgPty%_%msgId%"
	cfg.Output.ControlList = true
	cfg.Output.MultiFile = true
	cfg.ControlList.Format = report.FormatJSON
	cfg.ControlList.DateFormat = "02.01.2006"
	cfg.ControlList.DecimalSeparator = ","
	cfg.ControlList.ThousandsSeparator = "."
	cfg.ControlList.CurrencyFormat = "%s €"
	cfg.CSV.Delimiter = ";"
	return cfg
}

func TestNewContainer(t *testing.T) {
	_, err := NewContainer(nil)
	assert.EqualError(t, err, "configuration cannot be nil")

	_, err = NewContainerWithLogger(nil, nil)
	assert.EqualError(t, err, "configuration cannot be nil")

	c, err := NewContainer(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, c.GetLogger())
	assert.NoError(t, c.Close())
}

func TestNewContainer_InvalidVersion(t *testing.T) {
	cfg := testConfig()
	cfg.SEPA.Version = "pain.009.001.01"

	_, err := NewContainerWithLogger(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sepa.version")
}

func TestContainer_ConvenienceMethods(t *testing.T) {
	logger := logging.NewMockLogger()
	cfg := testConfig()

	c, err := NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("INFO", "Container initialized successfully"))

	assert.Same(t, cfg, c.GetConfig())
	assert.Equal(t, logger, c.GetLogger())
	assert.NotNil(t, c.GetStore())
	assert.Equal(t, rules.DD00800102, c.Version())
	assert.Contains(t, c.GetCountryTable(), "FR")

	defaults := c.Defaults()
	assert.Equal(t, rules.DD00800102, defaults.Version)
	assert.Equal(t, "Initiator Name", defaults.InitgPty)
	assert.Equal(t, "DE98ZZZ09999999999", defaults.InitgPtyID)

	assert.Len(t, c.DocumentOptions(), 4)

	out := c.OutputOptions()
	assert.Equal(t, "%initgPty%_%msgId%", out.FilenameTemplate)
	assert.True(t, out.ControlList)
	assert.Equal(t, report.FormatJSON, out.ControlListFormat)
	assert.Equal(t, "%s €", out.Report.MoneyFormat.CurrencyFormat)
	assert.Equal(t, ';', out.Report.Delimiter)
	assert.False(t, out.Zip)

	assert.True(t, c.BatchOptions().MultiFile)

	require.NoError(t, c.Close())
	assert.True(t, logger.HasEntry("INFO", "Container closed"))
}

func TestContainer_CountryTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "countries.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CH:\n  - LI\n"), 0o600))

	cfg := testConfig()
	cfg.SEPA.CountryTable = path
	c, err := NewContainerWithLogger(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"LI"}, c.GetCountryTable()["CH"])

	require.NoError(t, os.WriteFile(path, []byte("CH: [unclosed"), 0o600))
	_, err = NewContainerWithLogger(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load country table")
}

const debitBatch = `
msgId: MSG-1
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

func TestContainer_NewProcessor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(debitBatch), 0o600))

	c, err := NewContainerWithLogger(testConfig(), nil)
	require.NoError(t, err)

	opts := c.BatchOptions()
	opts.MultiFile = false
	res := c.NewProcessor(c.Defaults(), opts).ProcessFile(path)
	require.NoError(t, res.Err)

	require.Len(t, res.Files, 2)
	assert.Equal(t, "Initiator Name_MSG-1.xml", res.Files[0].Name)
	assert.Equal(t, "Initiator Name_MSG-1.C1.ControlList.json", res.Files[1].Name)
	assert.Equal(t, rules.DD00800102, res.Summary.Version)
	assert.Equal(t, "Initiator Name", res.Summary.Initiator)
}
