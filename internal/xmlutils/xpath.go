package xmlutils

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/xmlpath.v2"

	"fjacquet/sepa-pain/internal/logging"
)

var log = logging.NewDiscardLogger()

// SetLogger sets a custom logger for this package
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// LoadXMLFile loads an XML file and returns the XML root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	root, err := xmlpath.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML file: %w", err)
	}

	return root, nil
}

// ParseXML parses an in-memory XML document
func ParseXML(data []byte) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// ExtractWithXPath extracts values from an XML file using an XPath expression
func ExtractWithXPath(xmlFilePath, xpath string) ([]string, error) {
	root, err := LoadXMLFile(xmlFilePath)
	if err != nil {
		return nil, err
	}

	return ExtractFromXML(root, xpath)
}

// GetOrEmpty returns the value at the specified index in a slice, or an empty string if the index is out of bounds
func GetOrEmpty(slice []string, index int) string {
	if index < len(slice) {
		return slice[index]
	}
	return ""
}

// PainSummary is the header and per-collection totals of a payment document.
type PainSummary struct {
	MessageType     string
	MessageID       string
	CreationTime    string
	InitiatingParty string
	NumberOfTxs     string
	ControlSum      string
	Collections     []CollectionSummary
}

// CollectionSummary describes one PmtInf block.
type CollectionSummary struct {
	ID          string
	Method      string
	Date        string
	Owner       string
	IBAN        string
	NumberOfTxs string
	ControlSum  string
}

// ReadSummary extracts a PainSummary from a parsed pain.001 or pain.008
// document.
func ReadSummary(root *xmlpath.Node) (PainSummary, error) {
	paths := DefaultPainXPaths()

	var s PainSummary
	var date, owner, iban string
	switch {
	case xmlpath.MustCompile(paths.CreditTransfer.Root).Exists(root):
		s.MessageType = "pain.001"
		date, owner, iban = paths.CreditTransfer.ExecutionDate, paths.CreditTransfer.Owner, paths.CreditTransfer.IBAN
	case xmlpath.MustCompile(paths.DirectDebit.Root).Exists(root):
		s.MessageType = "pain.008"
		date, owner, iban = paths.DirectDebit.CollectionDate, paths.DirectDebit.Owner, paths.DirectDebit.IBAN
	default:
		return s, fmt.Errorf("not a pain.001 or pain.008 document")
	}

	header := map[*string]string{
		&s.MessageID:       paths.Header.MessageID,
		&s.CreationTime:    paths.Header.CreationTime,
		&s.NumberOfTxs:     paths.Header.NumberOfTxs,
		&s.ControlSum:      paths.Header.ControlSum,
		&s.InitiatingParty: paths.Header.InitiatingParty,
	}
	for dst, xpath := range header {
		values, err := ExtractFromXML(root, xpath)
		if err != nil {
			return s, err
		}
		*dst = GetOrEmpty(values, 0)
	}

	columns := []string{
		paths.Collection.ID, paths.Collection.Method, date, owner, iban,
		paths.Collection.NumberOfTxs, paths.Collection.ControlSum,
	}
	values := make([][]string, len(columns))
	for i, xpath := range columns {
		v, err := ExtractFromXML(root, xpath)
		if err != nil {
			return s, err
		}
		values[i] = v
	}
	for i := range values[0] {
		s.Collections = append(s.Collections, CollectionSummary{
			ID:          GetOrEmpty(values[0], i),
			Method:      GetOrEmpty(values[1], i),
			Date:        strings.TrimSpace(GetOrEmpty(values[2], i)),
			Owner:       GetOrEmpty(values[3], i),
			IBAN:        GetOrEmpty(values[4], i),
			NumberOfTxs: GetOrEmpty(values[5], i),
			ControlSum:  GetOrEmpty(values[6], i),
		})
	}
	log.Debug("Read document summary",
		logging.F(logging.FieldMessageID, s.MessageID),
		logging.F(logging.FieldCount, len(s.Collections)))
	return s, nil
}
