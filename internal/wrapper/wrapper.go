// Package wrapper puts a serialized payment document into a container
// envelope carrying the SHA-256 hash of the document's canonical form.
package wrapper

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"fjacquet/sepa-pain/internal/dateutils"
)

// Namespace of the container envelope.
const Namespace = "urn:conxml:xsd:container.nnn.002.02"

// HashAlgorithm is the algorithm name written next to the hash.
const HashAlgorithm = "SHA256"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;",
		"\t", "&#x9;", "\n", "&#xA;", "\r", "&#xD;")
)

// Canonicalize rewrites doc into a canonical form: the XML declaration,
// comments and whitespace-only text between elements are dropped, line
// endings are normalized, empty elements are written as start/end pairs
// and attributes are sorted with namespace declarations first.
func Canonicalize(doc []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var out bytes.Buffer
	depth := 0
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to canonicalize document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			out.WriteByte('<')
			out.WriteString(qualified(t.Name))
			for _, a := range sortedAttrs(t.Attr) {
				out.WriteByte(' ')
				out.WriteString(qualified(a.Name))
				out.WriteString(`="`)
				out.WriteString(attrEscaper.Replace(a.Value))
				out.WriteByte('"')
			}
			out.WriteByte('>')
		case xml.EndElement:
			depth--
			out.WriteString("</")
			out.WriteString(qualified(t.Name))
			out.WriteByte('>')
		case xml.CharData:
			if depth == 0 || len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			out.WriteString(textEscaper.Replace(string(t)))
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("failed to canonicalize document: unbalanced elements")
	}
	return out.Bytes(), nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func isNamespaceDecl(n xml.Name) bool {
	return (n.Space == "" && n.Local == "xmlns") || n.Space == "xmlns"
}

func sortedAttrs(attrs []xml.Attr) []xml.Attr {
	out := append([]xml.Attr(nil), attrs...)
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := isNamespaceDecl(out[i].Name), isNamespaceDecl(out[j].Name)
		if ni != nj {
			return ni
		}
		return qualified(out[i].Name) < qualified(out[j].Name)
	})
	return out
}

// Digest returns the hex encoded SHA-256 hash of the canonical form of doc.
func Digest(doc []byte) (string, error) {
	canonical, err := Canonicalize(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return strings.ToUpper(hex.EncodeToString(sum[:])), nil
}

// Wrap returns doc inside a container envelope. messageType is "pain.001"
// or "pain.008" and selects the MsgPain001 or MsgPain008 block.
func Wrap(doc []byte, messageType string, now time.Time) ([]byte, error) {
	block, err := blockName(messageType)
	if err != nil {
		return nil, err
	}
	canonical, err := Canonicalize(doc)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(canonical)

	var b bytes.Buffer
	b.WriteString(xml.Header)
	fmt.Fprintf(&b, "<conxml xmlns=%q>", Namespace)
	fmt.Fprintf(&b, "<CreDtTm>%s</CreDtTm>", dateutils.ToISODateTime(now))
	fmt.Fprintf(&b, "<%s>", block)
	fmt.Fprintf(&b, "<HashValue>%s</HashValue>", strings.ToUpper(hex.EncodeToString(sum[:])))
	fmt.Fprintf(&b, "<HashAlgorithm>%s</HashAlgorithm>", HashAlgorithm)
	b.Write(canonical)
	fmt.Fprintf(&b, "</%s>", block)
	b.WriteString("</conxml>\n")
	return b.Bytes(), nil
}

func blockName(messageType string) (string, error) {
	switch messageType {
	case "pain.001":
		return "MsgPain001", nil
	case "pain.008":
		return "MsgPain008", nil
	default:
		return "", fmt.Errorf("unsupported container message type: %s", messageType)
	}
}
