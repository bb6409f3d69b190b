// Package xmlutils reads generated payment documents back with XPath
// expressions.
package xmlutils

// Pain contains the XPath expressions used to read pain.001 and pain.008
// documents. Collection paths select one node per PmtInf block, in
// document order.
type Pain struct {
	// Header contains XPath expressions for group header data
	Header struct {
		MessageID       string
		CreationTime    string
		NumberOfTxs     string
		ControlSum      string
		InitiatingParty string
	}

	// Collection contains XPath expressions for payment information blocks
	Collection struct {
		ID          string
		Method      string
		NumberOfTxs string
		ControlSum  string
	}

	// CreditTransfer contains XPath expressions specific to pain.001
	CreditTransfer struct {
		Root          string
		ExecutionDate string
		Owner         string
		IBAN          string
	}

	// DirectDebit contains XPath expressions specific to pain.008
	DirectDebit struct {
		Root           string
		CollectionDate string
		Owner          string
		IBAN           string
	}
}

// DefaultPainXPaths returns a Pain struct with the default XPath expressions.
// The root paths also match a document held inside a container envelope.
func DefaultPainXPaths() Pain {
	pain := Pain{}

	pain.Header.MessageID = "//GrpHdr/MsgId"
	pain.Header.CreationTime = "//GrpHdr/CreDtTm"
	pain.Header.NumberOfTxs = "//GrpHdr/NbOfTxs"
	pain.Header.ControlSum = "//GrpHdr/CtrlSum"
	pain.Header.InitiatingParty = "//GrpHdr/InitgPty/Nm"

	pain.Collection.ID = "//PmtInf/PmtInfId"
	pain.Collection.Method = "//PmtInf/PmtMtd"
	pain.Collection.NumberOfTxs = "//PmtInf/NbOfTxs"
	pain.Collection.ControlSum = "//PmtInf/CtrlSum"

	pain.CreditTransfer.Root = "//Document/CstmrCdtTrfInitn"
	pain.CreditTransfer.ExecutionDate = "//PmtInf/ReqdExctnDt"
	pain.CreditTransfer.Owner = "//PmtInf/Dbtr/Nm"
	pain.CreditTransfer.IBAN = "//PmtInf/DbtrAcct/Id/IBAN"

	pain.DirectDebit.Root = "//Document/CstmrDrctDbtInitn"
	pain.DirectDebit.CollectionDate = "//PmtInf/ReqdColltnDt"
	pain.DirectDebit.Owner = "//PmtInf/Cdtr/Nm"
	pain.DirectDebit.IBAN = "//PmtInf/CdtrAcct/Id/IBAN"

	return pain
}
