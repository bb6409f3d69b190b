package document

import (
	"encoding/xml"
	"fmt"
	"time"

	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/models"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
)

const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
	notProvided  = "NOTPROVIDED"
	chargeBearer = "SLEV"
	serviceLevel = "SEPA"
)

// Serialize renders the document with the current time of its clock.
func (d *Document) Serialize() ([]byte, error) {
	return d.SerializeAt(d.clock.Now())
}

// SerializeAt renders the document as if created at now. Collections
// without payments are skipped. The output is identical for identical
// input and now.
func (d *Document) SerializeAt(now time.Time) ([]byte, error) {
	return d.render(d.msgID, d.collections, now)
}

func (d *Document) render(msgID string, colls []*collection.Collection, now time.Time) ([]byte, error) {
	if len(colls) == 0 {
		return nil, sepaerror.ErrEmptyDocument
	}
	var nonEmpty []*collection.Collection
	count := 0
	for _, c := range colls {
		if c.IsEmpty() {
			continue
		}
		nonEmpty = append(nonEmpty, c)
		count += c.TransactionCount()
	}
	if count == 0 {
		return nil, sepaerror.ErrEmptyDocument
	}

	hdr := d.groupHeader(msgID, nonEmpty, count, now)
	today := dateutils.ToISODate(now)

	doc := xmlDocument{Xmlns: d.profile.Namespace}
	if d.profile.SchemaLocation != "" {
		doc.XmlnsXsi = xsiNamespace
		doc.SchemaLocation = d.profile.SchemaLocation
	}
	if d.profile.Kind == rules.DirectDebit {
		doc.DrctDbt = &ddInitiation{GrpHdr: hdr}
		for _, c := range nonEmpty {
			doc.DrctDbt.PmtInf = append(doc.DrctDbt.PmtInf, d.directDebitInfo(c, today))
		}
	} else {
		doc.CdtTrf = &ctInitiation{GrpHdr: hdr}
		for _, c := range nonEmpty {
			doc.CdtTrf.PmtInf = append(doc.CdtTrf.PmtInf, d.creditTransferInfo(c, today))
		}
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		d.logger.WithError(err).Error("Failed to marshal document")
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	d.logger.Debug("Document serialized",
		logging.F(logging.FieldCount, count),
		logging.F(logging.FieldControlSum, hdr.CtrlSum))
	return append([]byte(xml.Header), out...), nil
}

func (d *Document) groupHeader(msgID string, colls []*collection.Collection, count int, now time.Time) groupHeader {
	sum := collection.ControlSumOf(colls)
	hdr := groupHeader{
		MsgID:    msgID,
		CreDtTm:  dateutils.ToISODateTime(now),
		NbOfTxs:  count,
		CtrlSum:  sum.StringFixed(2),
		InitgPty: initgPtyParty{Nm: d.initgPty},
	}
	if d.initgPtyID == "" && d.orgID == "" && d.orgBOB == "" {
		return hdr
	}

	// Id is a choice: the private id wins over the organisation id.
	id := &initgPtyID{}
	switch {
	case d.initgPtyID != "":
		id.PrvtID = &otherOnly{Othr: idOnly{ID: d.initgPtyID}}
	case d.orgID != "":
		id.OrgID = &orgID{Othr: &schemeOther{ID: d.orgID, SchmeNm: schemeName{Prtry: "SEPA"}}}
	case d.orgBOB != "":
		id.OrgID = &orgID{BICOrBEI: d.orgBOB}
	}
	hdr.InitgPty.ID = id
	return hdr
}

// agentFor names a financial institution by BIC, or marks it as not
// provided.
func (d *Document) agentFor(bic string) agent {
	if bic == "" {
		return agent{FinInstnID: finInstnID{Othr: &idOnly{ID: notProvided}}}
	}
	return d.agentByBIC(bic)
}

func (d *Document) agentByBIC(bic string) agent {
	if d.profile.AgentTag == rules.AgentBICFI {
		return agent{FinInstnID: finInstnID{BICFI: bic}}
	}
	return agent{FinInstnID: finInstnID{BIC: bic}}
}

func (d *Document) partyOf(nm string, addr *models.PostalAddress) party {
	return party{Nm: nm, PstlAdr: d.addressOf(addr)}
}

func (d *Document) addressOf(a *models.PostalAddress) *postalAddr {
	if a == nil || a.IsEmpty() {
		return nil
	}
	switch d.profile.Address {
	case fields.AddressLines:
		return &postalAddr{Ctry: a.Ctry, AdrLine: a.AdrLine}
	case fields.AddressStructured:
		return &postalAddr{
			Dept:        a.Dept,
			SubDept:     a.SubDept,
			StrtNm:      a.StrtNm,
			BldgNb:      a.BldgNb,
			BldgNm:      a.BldgNm,
			Flr:         a.Flr,
			PstBx:       a.PstBx,
			Room:        a.Room,
			PstCd:       a.PstCd,
			TwnNm:       a.TwnNm,
			TwnLctnNm:   a.TwnLctnNm,
			DstrctNm:    a.DstrctNm,
			CtrySubDvsn: a.CtrySubDvsn,
			Ctry:        a.Ctry,
		}
	}
	return nil
}

func optionalName(v string) *name {
	if v == "" {
		return nil
	}
	return &name{Nm: v}
}

func optionalCode(v string) *code {
	if v == "" {
		return nil
	}
	return &code{Cd: v}
}

func optionalRemittance(v string) *remittance {
	if v == "" {
		return nil
	}
	return &remittance{Ustrd: v}
}

func (d *Document) creditTransferInfo(c *collection.Collection, today string) ctPmtInf {
	p := d.profile
	ccy := c.Currency()

	info := ctPmtInf{
		PmtInfID:  c.ID(),
		PmtMtd:    "TRF",
		BtchBookg: c.Get(fields.BtchBookg),
		NbOfTxs:   c.TransactionCount(),
		CtrlSum:   c.ControlSum().StringFixed(2),
		PmtTpInf: ctPmtTpInf{
			InstrPrty: "NORM",
			SvcLvl:    code{Cd: serviceLevel},
			CtgyPurp:  optionalCode(c.Get(fields.CtgyPurp)),
		},
		ReqdExctnDt: d.executionDate(c, today),
		Dbtr:        d.partyOf(c.Get(fields.Dbtr), c.Address()),
		DbtrAcct:    account{ID: ibanAccount{IBAN: c.Get(fields.IBAN)}, Ccy: ccy},
		DbtrAgt:     d.agentFor(c.Get(fields.BIC)),
		UltmtDbtr:   optionalName(c.Get(fields.UltmtDbtr)),
		ChrgBr:      chargeBearer,
	}

	for _, pay := range c.Payments() {
		tx := ctTx{
			PmtID:     paymentID{EndToEndID: pay.Get(fields.PmtID)},
			Amt:       ctAmount{InstdAmt: amount{Ccy: ccy, Value: pay.Amount().StringFixed(2)}},
			Cdtr:      d.partyOf(pay.Get(fields.Cdtr), pay.Address()),
			CdtrAcct:  account{ID: ibanAccount{IBAN: pay.Get(fields.IBAN)}},
			UltmtCdtr: optionalName(pay.Get(fields.UltmtCdtr)),
			Purp:      optionalCode(pay.Get(fields.Purp)),
			RmtInf:    optionalRemittance(pay.Get(fields.RmtInf)),
		}
		if p.PaymentUltimateDebtor && (pay.Has(fields.UltmtDbtr) || pay.Has(fields.UltmtDbtrID)) {
			tx.UltmtDbtr = &ultimateDebtor{Nm: pay.Get(fields.UltmtDbtr)}
			if pay.Has(fields.UltmtDbtrID) {
				tx.UltmtDbtr.ID = &ultimateDbtID{OrgID: otherOnly{Othr: idOnly{ID: pay.Get(fields.UltmtDbtrID)}}}
			}
		}
		if bic := pay.Get(fields.BIC); bic != "" {
			a := d.agentByBIC(bic)
			tx.CdtrAgt = &a
		}
		info.CdtTrfTxInf = append(info.CdtTrfTxInf, tx)
	}
	return info
}

func (d *Document) executionDate(c *collection.Collection, today string) requestedDate {
	date := c.Get(fields.ReqdExctnDt)
	if date == "" {
		date = today
	}
	if !d.profile.ExecutionDateChoice {
		return requestedDate{Value: date}
	}
	if dtTm := c.Get(fields.ReqdExctnDtTm); dtTm != "" {
		return requestedDate{DtTm: dtTm}
	}
	return requestedDate{Dt: date}
}

func (d *Document) directDebitInfo(c *collection.Collection, today string) ddPmtInf {
	ccy := c.Currency()
	date := c.Get(fields.ReqdColltnDt)
	if date == "" {
		date = today
	}

	info := ddPmtInf{
		PmtInfID:  c.ID(),
		PmtMtd:    "DD",
		BtchBookg: c.Get(fields.BtchBookg),
		NbOfTxs:   c.TransactionCount(),
		CtrlSum:   c.ControlSum().StringFixed(2),
		PmtTpInf: ddPmtTpInf{
			SvcLvl:    code{Cd: serviceLevel},
			LclInstrm: code{Cd: c.Get(fields.LclInstrm)},
			SeqTp:     c.Get(fields.SeqTp),
			CtgyPurp:  optionalCode(c.Get(fields.CtgyPurp)),
		},
		ReqdColltnDt: date,
		Cdtr:         d.partyOf(c.Get(fields.Cdtr), c.Address()),
		CdtrAcct:     account{ID: ibanAccount{IBAN: c.Get(fields.IBAN)}, Ccy: ccy},
		CdtrAgt:      d.agentFor(c.Get(fields.BIC)),
		UltmtCdtr:    optionalName(c.Get(fields.UltmtCdtr)),
		ChrgBr:       chargeBearer,
		CdtrSchmeID:  &creditorSchemeID{ID: newPrivateID(c.Get(fields.CI))},
	}

	for _, pay := range c.Payments() {
		info.DrctDbtTxInf = append(info.DrctDbtTxInf, ddTx{
			PmtID:     paymentID{EndToEndID: pay.Get(fields.PmtID)},
			InstdAmt:  amount{Ccy: ccy, Value: pay.Amount().StringFixed(2)},
			DrctDbtTx: directDebitTx{MndtRltdInf: d.mandateOf(pay)},
			DbtrAgt:   d.agentFor(pay.Get(fields.BIC)),
			Dbtr:      d.partyOf(pay.Get(fields.Dbtr), pay.Address()),
			DbtrAcct:  account{ID: ibanAccount{IBAN: pay.Get(fields.IBAN)}},
			UltmtDbtr: optionalName(pay.Get(fields.UltmtDbtr)),
			Purp:      optionalCode(pay.Get(fields.Purp)),
			RmtInf:    optionalRemittance(pay.Get(fields.RmtInf)),
		})
	}
	return info
}

func (d *Document) mandateOf(pay *collection.Payment) mandateInfo {
	m := mandateInfo{
		MndtID:       pay.Get(fields.MndtID),
		DtOfSgntr:    pay.Get(fields.DtOfSgntr),
		AmdmntInd:    pay.Get(fields.AmdmntInd),
		ElctrncSgntr: pay.Get(fields.ElctrncSgntr),
	}
	if m.AmdmntInd != "true" {
		return m
	}

	dtls := &amendmentDetails{OrgnlMndtID: pay.Get(fields.OrgnlMndtID)}
	if pay.Has(fields.OrgnlCdtrSchmeIDNm) || pay.Has(fields.OrgnlCdtrSchmeIDID) {
		dtls.OrgnlCdtrSchmeID = &originalCreditorScheme{Nm: pay.Get(fields.OrgnlCdtrSchmeIDNm)}
		if pay.Has(fields.OrgnlCdtrSchmeIDID) {
			dtls.OrgnlCdtrSchmeID.ID = newPrivateID(pay.Get(fields.OrgnlCdtrSchmeIDID))
		}
	}

	switch {
	case pay.Has(fields.OrgnlDbtrAcctIBAN):
		dtls.OrgnlDbtrAcct = &originalAccount{ID: &ibanAccount{IBAN: pay.Get(fields.OrgnlDbtrAcctIBAN)}}
	case d.profile.AgentAmendmentByBIC:
		// Without an original IBAN the debtor account changed at the same bank.
		dtls.OrgnlDbtrAcct = &originalAccount{Othr: &idOnly{ID: fields.SMNDA}}
	}

	if d.profile.AgentAmendmentByBIC {
		if bic := pay.Get(fields.OrgnlDbtrAgtBIC); bic != "" {
			a := d.agentByBIC(bic)
			dtls.OrgnlDbtrAgt = &a
		}
	} else if pay.Has(fields.OrgnlDbtrAgt) {
		dtls.OrgnlDbtrAgt = &agent{FinInstnID: finInstnID{Othr: &idOnly{ID: fields.SMNDA}}}
	}

	m.AmdmntInfDtls = dtls
	return m
}
