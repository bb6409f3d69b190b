// Package fields holds the canonical field names of payment records and the
// registry that validates and sanitizes their values.
package fields

import "strings"

// Canonical (lower-cased) field names.
const (
	MsgID      = "msgid"
	InitgPty   = "initgpty"
	InitgPtyID = "initgptyid"
	OrgIDID    = "orgid_id"
	OrgIDBOB   = "orgid_bob"

	PmtInfID      = "pmtinfid"
	PmtID         = "pmtid"
	Dbtr          = "dbtr"
	Cdtr          = "cdtr"
	IBAN          = "iban"
	BIC           = "bic"
	CI            = "ci"
	Ccy           = "ccy"
	BtchBookg     = "btchbookg"
	CtgyPurp      = "ctgypurp"
	Purp          = "purp"
	RmtInf        = "rmtinf"
	InstdAmt      = "instdamt"
	UltmtDbtr     = "ultmtdbtr"
	UltmtDbtrID   = "ultmtdbtrid"
	UltmtCdtr     = "ultmtcdtr"
	ReqdExctnDt   = "reqdexctndt"
	ReqdExctnDtTm = "reqdexctndttm"
	ReqdColltnDt  = "reqdcolltndt"
	PstlAdr       = "pstladr"

	LclInstrm    = "lclinstrm"
	SeqTp        = "seqtp"
	MndtID       = "mndtid"
	DtOfSgntr    = "dtofsgntr"
	ElctrncSgntr = "elctrncsgntr"
	AmdmntInd    = "amdmntind"

	OrgnlMndtID        = "orgnlmndtid"
	OrgnlCdtrSchmeIDNm = "orgnlcdtrschmeid_nm"
	OrgnlCdtrSchmeIDID = "orgnlcdtrschmeid_id"
	OrgnlDbtrAcctIBAN  = "orgnldbtracct_iban"
	OrgnlDbtrAgt       = "orgnldbtragt"
	OrgnlDbtrAgtBIC    = "orgnldbtragt_bic"
)

// Code values with rule significance.
const (
	SMNDA      = "SMNDA"
	SeqTpFirst = "FRST"
	SeqTpRcur  = "RCUR"
	SeqTpOOFF  = "OOFF"
	SeqTpFinal = "FNAL"
	LclCore    = "CORE"
	LclCOR1    = "COR1"
	LclB2B     = "B2B"
)

// aliases maps legacy names still found in older batch files to their
// canonical field name.
var aliases = map[string]string{
	"dbtrpstladr": PstlAdr,
	"ultmtdebtr":  UltmtDbtr,
	"ultmtcdrt":   UltmtCdtr,
}

// Canonical returns the canonical name for a field key in any case,
// resolving legacy aliases.
func Canonical(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	if c, ok := aliases[k]; ok {
		return c
	}
	return k
}
