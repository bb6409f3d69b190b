package xmlutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrEmpty(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		index    int
		expected string
	}{
		{
			name:     "valid index returns value",
			slice:    []string{"a", "b", "c"},
			index:    1,
			expected: "b",
		},
		{
			name:     "first index",
			slice:    []string{"first", "second"},
			index:    0,
			expected: "first",
		},
		{
			name:     "last valid index",
			slice:    []string{"x", "y", "z"},
			index:    2,
			expected: "z",
		},
		{
			name:     "index out of bounds returns empty",
			slice:    []string{"a", "b"},
			index:    5,
			expected: "",
		},
		{
			name:     "empty slice returns empty",
			slice:    []string{},
			index:    0,
			expected: "",
		},
		{
			name:     "nil slice returns empty",
			slice:    nil,
			index:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetOrEmpty(tt.slice, tt.index)
			assert.Equal(t, tt.expected, result)
		})
	}
}

const directDebitSample = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.008.001.02">
  <CstmrDrctDbtInitn>
    <GrpHdr>
      <MsgId>MSG-1</MsgId>
      <CreDtTm>2014-10-19T00:38:44</CreDtTm>
      <NbOfTxs>3</NbOfTxs>
      <CtrlSum>30.00</CtrlSum>
      <InitgPty>
        <Nm>Initiator</Nm>
      </InitgPty>
    </GrpHdr>
    <PmtInf>
      <PmtInfId>COLL-1</PmtInfId>
      <PmtMtd>DD</PmtMtd>
      <NbOfTxs>2</NbOfTxs>
      <CtrlSum>20.00</CtrlSum>
      <ReqdColltnDt>2014-10-21</ReqdColltnDt>
      <Cdtr>
        <Nm>Creditor One</Nm>
      </Cdtr>
      <CdtrAcct>
        <Id>
          <IBAN>DE87200500001234567890</IBAN>
        </Id>
      </CdtrAcct>
    </PmtInf>
    <PmtInf>
      <PmtInfId>COLL-2</PmtInfId>
      <PmtMtd>DD</PmtMtd>
      <NbOfTxs>1</NbOfTxs>
      <CtrlSum>10.00</CtrlSum>
      <ReqdColltnDt>2014-10-22</ReqdColltnDt>
      <Cdtr>
        <Nm>Creditor Two</Nm>
      </Cdtr>
      <CdtrAcct>
        <Id>
          <IBAN>AT611904300234573201</IBAN>
        </Id>
      </CdtrAcct>
    </PmtInf>
  </CstmrDrctDbtInitn>
</Document>
`

const creditTransferSample = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.09">
  <CstmrCdtTrfInitn>
    <GrpHdr>
      <MsgId>MSG-2</MsgId>
      <CreDtTm>2014-10-19T00:38:44</CreDtTm>
      <NbOfTxs>1</NbOfTxs>
      <CtrlSum>1.14</CtrlSum>
      <InitgPty>
        <Nm>Initiator</Nm>
      </InitgPty>
    </GrpHdr>
    <PmtInf>
      <PmtInfId>PAY-1</PmtInfId>
      <PmtMtd>TRF</PmtMtd>
      <NbOfTxs>1</NbOfTxs>
      <CtrlSum>1.14</CtrlSum>
      <ReqdExctnDt>
        <Dt>2014-10-20</Dt>
      </ReqdExctnDt>
      <Dbtr>
        <Nm>Debtor</Nm>
      </Dbtr>
      <DbtrAcct>
        <Id>
          <IBAN>DE87200500001234567890</IBAN>
        </Id>
      </DbtrAcct>
    </PmtInf>
  </CstmrCdtTrfInitn>
</Document>
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadXMLFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		root, err := LoadXMLFile(writeSample(t, directDebitSample))
		require.NoError(t, err)
		assert.NotNil(t, root)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadXMLFile(filepath.Join(t.TempDir(), "missing.xml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open XML file")
	})

	t.Run("invalid XML", func(t *testing.T) {
		_, err := LoadXMLFile(writeSample(t, "<Document><GrpHdr></Document>"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse XML file")
	})
}

func TestExtractFromXML(t *testing.T) {
	root, err := ParseXML([]byte(directDebitSample))
	require.NoError(t, err)

	ids, err := ExtractFromXML(root, "//PmtInf/PmtInfId")
	require.NoError(t, err)
	assert.Equal(t, []string{"COLL-1", "COLL-2"}, ids)

	none, err := ExtractFromXML(root, "//PmtInf/Missing")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = ExtractFromXML(root, "//PmtInf[")
	assert.Error(t, err)
}

func TestExtractWithXPath(t *testing.T) {
	values, err := ExtractWithXPath(writeSample(t, directDebitSample), "//GrpHdr/MsgId")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSG-1"}, values)

	_, err = ExtractWithXPath(filepath.Join(t.TempDir(), "missing.xml"), "//GrpHdr/MsgId")
	assert.Error(t, err)
}

func TestReadSummary_DirectDebit(t *testing.T) {
	root, err := ParseXML([]byte(directDebitSample))
	require.NoError(t, err)

	s, err := ReadSummary(root)
	require.NoError(t, err)

	assert.Equal(t, "pain.008", s.MessageType)
	assert.Equal(t, "MSG-1", s.MessageID)
	assert.Equal(t, "2014-10-19T00:38:44", s.CreationTime)
	assert.Equal(t, "Initiator", s.InitiatingParty)
	assert.Equal(t, "3", s.NumberOfTxs)
	assert.Equal(t, "30.00", s.ControlSum)
	require.Len(t, s.Collections, 2)
	assert.Equal(t, CollectionSummary{
		ID:          "COLL-1",
		Method:      "DD",
		Date:        "2014-10-21",
		Owner:       "Creditor One",
		IBAN:        "DE87200500001234567890",
		NumberOfTxs: "2",
		ControlSum:  "20.00",
	}, s.Collections[0])
	assert.Equal(t, "COLL-2", s.Collections[1].ID)
	assert.Equal(t, "AT611904300234573201", s.Collections[1].IBAN)
}

func TestReadSummary_CreditTransferNestedDate(t *testing.T) {
	root, err := ParseXML([]byte(creditTransferSample))
	require.NoError(t, err)

	s, err := ReadSummary(root)
	require.NoError(t, err)

	assert.Equal(t, "pain.001", s.MessageType)
	require.Len(t, s.Collections, 1)
	assert.Equal(t, "TRF", s.Collections[0].Method)
	assert.Equal(t, "2014-10-20", s.Collections[0].Date)
	assert.Equal(t, "Debtor", s.Collections[0].Owner)
}

func TestReadSummary_UnknownDocument(t *testing.T) {
	root, err := ParseXML([]byte("<Document><BkToCstmrStmt/></Document>"))
	require.NoError(t, err)

	_, err = ReadSummary(root)
	assert.EqualError(t, err, "not a pain.001 or pain.008 document")
}

func TestDefaultPainXPaths(t *testing.T) {
	paths := DefaultPainXPaths()
	assert.Equal(t, "//GrpHdr/MsgId", paths.Header.MessageID)
	assert.Equal(t, "//Document/CstmrCdtTrfInitn", paths.CreditTransfer.Root)
	assert.Equal(t, "//Document/CstmrDrctDbtInitn", paths.DirectDebit.Root)
}
