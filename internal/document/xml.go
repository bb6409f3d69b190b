package document

import "encoding/xml"

// The types below mirror the subset of the pain.001 and pain.008 schemas
// this package writes. Element order follows field order.

type xmlDocument struct {
	XMLName        xml.Name      `xml:"Document"`
	Xmlns          string        `xml:"xmlns,attr"`
	XmlnsXsi       string        `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string        `xml:"xsi:schemaLocation,attr,omitempty"`
	CdtTrf         *ctInitiation `xml:"CstmrCdtTrfInitn,omitempty"`
	DrctDbt        *ddInitiation `xml:"CstmrDrctDbtInitn,omitempty"`
}

type ctInitiation struct {
	GrpHdr groupHeader `xml:"GrpHdr"`
	PmtInf []ctPmtInf  `xml:"PmtInf"`
}

type ddInitiation struct {
	GrpHdr groupHeader `xml:"GrpHdr"`
	PmtInf []ddPmtInf  `xml:"PmtInf"`
}

type groupHeader struct {
	MsgID    string        `xml:"MsgId"`
	CreDtTm  string        `xml:"CreDtTm"`
	NbOfTxs  int           `xml:"NbOfTxs"`
	CtrlSum  string        `xml:"CtrlSum"`
	InitgPty initgPtyParty `xml:"InitgPty"`
}

type initgPtyParty struct {
	Nm string      `xml:"Nm"`
	ID *initgPtyID `xml:"Id,omitempty"`
}

// initgPtyID holds exactly one of its fields.
type initgPtyID struct {
	PrvtID *otherOnly `xml:"PrvtId,omitempty"`
	OrgID  *orgID     `xml:"OrgId,omitempty"`
}

type orgID struct {
	BICOrBEI string       `xml:"BICOrBEI,omitempty"`
	Othr     *schemeOther `xml:"Othr,omitempty"`
}

type otherOnly struct {
	Othr idOnly `xml:"Othr"`
}

type idOnly struct {
	ID string `xml:"Id"`
}

type schemeOther struct {
	ID      string     `xml:"Id"`
	SchmeNm schemeName `xml:"SchmeNm"`
}

type schemeName struct {
	Prtry string `xml:"Prtry"`
}

type code struct {
	Cd string `xml:"Cd"`
}

type name struct {
	Nm string `xml:"Nm"`
}

type amount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

type party struct {
	Nm      string      `xml:"Nm"`
	PstlAdr *postalAddr `xml:"PstlAdr,omitempty"`
}

// postalAddr holds both address forms; a version only ever fills one.
type postalAddr struct {
	Dept        string   `xml:"Dept,omitempty"`
	SubDept     string   `xml:"SubDept,omitempty"`
	StrtNm      string   `xml:"StrtNm,omitempty"`
	BldgNb      string   `xml:"BldgNb,omitempty"`
	BldgNm      string   `xml:"BldgNm,omitempty"`
	Flr         string   `xml:"Flr,omitempty"`
	PstBx       string   `xml:"PstBx,omitempty"`
	Room        string   `xml:"Room,omitempty"`
	PstCd       string   `xml:"PstCd,omitempty"`
	TwnNm       string   `xml:"TwnNm,omitempty"`
	TwnLctnNm   string   `xml:"TwnLctnNm,omitempty"`
	DstrctNm    string   `xml:"DstrctNm,omitempty"`
	CtrySubDvsn string   `xml:"CtrySubDvsn,omitempty"`
	Ctry        string   `xml:"Ctry,omitempty"`
	AdrLine     []string `xml:"AdrLine,omitempty"`
}

type ibanAccount struct {
	IBAN string `xml:"IBAN"`
}

type account struct {
	ID  ibanAccount `xml:"Id"`
	Ccy string      `xml:"Ccy,omitempty"`
}

type agent struct {
	FinInstnID finInstnID `xml:"FinInstnId"`
}

type finInstnID struct {
	BIC   string  `xml:"BIC,omitempty"`
	BICFI string  `xml:"BICFI,omitempty"`
	Othr  *idOnly `xml:"Othr,omitempty"`
}

type paymentID struct {
	EndToEndID string `xml:"EndToEndId"`
}

type remittance struct {
	Ustrd string `xml:"Ustrd"`
}

// requestedDate is either plain text or, for newer versions, a Dt or DtTm
// child.
type requestedDate struct {
	Value string `xml:",chardata"`
	Dt    string `xml:"Dt,omitempty"`
	DtTm  string `xml:"DtTm,omitempty"`
}

type ctPmtTpInf struct {
	InstrPrty string `xml:"InstrPrty"`
	SvcLvl    code   `xml:"SvcLvl"`
	CtgyPurp  *code  `xml:"CtgyPurp,omitempty"`
}

type ctPmtInf struct {
	PmtInfID    string        `xml:"PmtInfId"`
	PmtMtd      string        `xml:"PmtMtd"`
	BtchBookg   string        `xml:"BtchBookg,omitempty"`
	NbOfTxs     int           `xml:"NbOfTxs"`
	CtrlSum     string        `xml:"CtrlSum"`
	PmtTpInf    ctPmtTpInf    `xml:"PmtTpInf"`
	ReqdExctnDt requestedDate `xml:"ReqdExctnDt"`
	Dbtr        party         `xml:"Dbtr"`
	DbtrAcct    account       `xml:"DbtrAcct"`
	DbtrAgt     agent         `xml:"DbtrAgt"`
	UltmtDbtr   *name         `xml:"UltmtDbtr,omitempty"`
	ChrgBr      string        `xml:"ChrgBr"`
	CdtTrfTxInf []ctTx        `xml:"CdtTrfTxInf"`
}

type ultimateDebtor struct {
	Nm string         `xml:"Nm,omitempty"`
	ID *ultimateDbtID `xml:"Id,omitempty"`
}

type ultimateDbtID struct {
	OrgID otherOnly `xml:"OrgId"`
}

type ctAmount struct {
	InstdAmt amount `xml:"InstdAmt"`
}

type ctTx struct {
	PmtID     paymentID       `xml:"PmtId"`
	Amt       ctAmount        `xml:"Amt"`
	UltmtDbtr *ultimateDebtor `xml:"UltmtDbtr,omitempty"`
	CdtrAgt   *agent          `xml:"CdtrAgt,omitempty"`
	Cdtr      party           `xml:"Cdtr"`
	CdtrAcct  account         `xml:"CdtrAcct"`
	UltmtCdtr *name           `xml:"UltmtCdtr,omitempty"`
	Purp      *code           `xml:"Purp,omitempty"`
	RmtInf    *remittance     `xml:"RmtInf,omitempty"`
}

type ddPmtTpInf struct {
	SvcLvl    code   `xml:"SvcLvl"`
	LclInstrm code   `xml:"LclInstrm"`
	SeqTp     string `xml:"SeqTp"`
	CtgyPurp  *code  `xml:"CtgyPurp,omitempty"`
}

type privateID struct {
	PrvtID struct {
		Othr schemeOther `xml:"Othr"`
	} `xml:"PrvtId"`
}

func newPrivateID(id string) *privateID {
	var p privateID
	p.PrvtID.Othr = schemeOther{ID: id, SchmeNm: schemeName{Prtry: "SEPA"}}
	return &p
}

type creditorSchemeID struct {
	ID *privateID `xml:"Id"`
}

type ddPmtInf struct {
	PmtInfID     string            `xml:"PmtInfId"`
	PmtMtd       string            `xml:"PmtMtd"`
	BtchBookg    string            `xml:"BtchBookg,omitempty"`
	NbOfTxs      int               `xml:"NbOfTxs"`
	CtrlSum      string            `xml:"CtrlSum"`
	PmtTpInf     ddPmtTpInf        `xml:"PmtTpInf"`
	ReqdColltnDt string            `xml:"ReqdColltnDt"`
	Cdtr         party             `xml:"Cdtr"`
	CdtrAcct     account           `xml:"CdtrAcct"`
	CdtrAgt      agent             `xml:"CdtrAgt"`
	UltmtCdtr    *name             `xml:"UltmtCdtr,omitempty"`
	ChrgBr       string            `xml:"ChrgBr"`
	CdtrSchmeID  *creditorSchemeID `xml:"CdtrSchmeId"`
	DrctDbtTxInf []ddTx            `xml:"DrctDbtTxInf"`
}

type originalCreditorScheme struct {
	Nm string     `xml:"Nm,omitempty"`
	ID *privateID `xml:"Id,omitempty"`
}

// originalAccount is Id/IBAN or, for a changed account at the same bank,
// Othr/Id SMNDA.
type originalAccount struct {
	ID   *ibanAccount `xml:"Id,omitempty"`
	Othr *idOnly      `xml:"Othr,omitempty"`
}

type amendmentDetails struct {
	OrgnlMndtID      string                  `xml:"OrgnlMndtId,omitempty"`
	OrgnlCdtrSchmeID *originalCreditorScheme `xml:"OrgnlCdtrSchmeId,omitempty"`
	OrgnlDbtrAcct    *originalAccount        `xml:"OrgnlDbtrAcct,omitempty"`
	OrgnlDbtrAgt     *agent                  `xml:"OrgnlDbtrAgt,omitempty"`
}

type mandateInfo struct {
	MndtID        string            `xml:"MndtId"`
	DtOfSgntr     string            `xml:"DtOfSgntr"`
	AmdmntInd     string            `xml:"AmdmntInd,omitempty"`
	AmdmntInfDtls *amendmentDetails `xml:"AmdmntInfDtls,omitempty"`
	ElctrncSgntr  string            `xml:"ElctrncSgntr,omitempty"`
}

type directDebitTx struct {
	MndtRltdInf mandateInfo `xml:"MndtRltdInf"`
}

type ddTx struct {
	PmtID     paymentID     `xml:"PmtId"`
	InstdAmt  amount        `xml:"InstdAmt"`
	DrctDbtTx directDebitTx `xml:"DrctDbtTx"`
	DbtrAgt   agent         `xml:"DbtrAgt"`
	Dbtr      party         `xml:"Dbtr"`
	DbtrAcct  account       `xml:"DbtrAcct"`
	UltmtDbtr *name         `xml:"UltmtDbtr,omitempty"`
	Purp      *code         `xml:"Purp,omitempty"`
	RmtInf    *remittance   `xml:"RmtInf,omitempty"`
}
