// Package inspect handles the inspect command
package inspect

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/sepa-pain/cmd/root"
	"fjacquet/sepa-pain/internal/bundle"
	"fjacquet/sepa-pain/internal/fileutils"
	"fjacquet/sepa-pain/internal/xmlutils"
)

var xpathExpr string

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show header and collection totals of a generated document",
	Long: `Read a generated pain.001 or pain.008 document back and print its group
header and one line per payment collection. The file may be a plain XML
document, a wrapped container document or a zip produced by generate.
With --xpath the values selected by the expression are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: inspectFunc,
}

func init() {
	Cmd.Flags().StringVar(&xpathExpr, "xpath", "", "Print the values selected by this XPath expression")
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	path := root.SharedFlags.Input
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no input file")
	}

	if xpathExpr != "" {
		values, err := xmlutils.ExtractWithXPath(path, xpathExpr)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(v))
		}
		return nil
	}

	entries, err := Inspect(path)
	if err != nil {
		return err
	}
	Print(cmd.OutOrStdout(), entries)
	return nil
}

// Entry is the summary of one document.
type Entry struct {
	Name    string
	Summary xmlutils.PainSummary
}

// Inspect reads the document at path, or every XML document of a zip
// archive.
func Inspect(path string) ([]Entry, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		node, err := xmlutils.LoadXMLFile(path)
		if err != nil {
			return nil, err
		}
		s, err := xmlutils.ReadSummary(node)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return []Entry{{Name: filepath.Base(path), Summary: s}}, nil
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, err
	}
	files, err := bundle.Unzip(data)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, f := range files {
		if !strings.EqualFold(filepath.Ext(f.Name), ".xml") {
			continue
		}
		node, err := xmlutils.ParseXML(f.Data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		s, err := xmlutils.ReadSummary(node)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		entries = append(entries, Entry{Name: f.Name, Summary: s})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: archive holds no XML document", filepath.Base(path))
	}
	return entries, nil
}

// Print writes entries as a plain text report.
func Print(w io.Writer, entries []Entry) {
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s := e.Summary
		fmt.Fprintf(w, "%s (%s)\n", e.Name, s.MessageType)
		fmt.Fprintf(w, "  message id:   %s\n", s.MessageID)
		fmt.Fprintf(w, "  created:      %s\n", s.CreationTime)
		fmt.Fprintf(w, "  initiator:    %s\n", s.InitiatingParty)
		fmt.Fprintf(w, "  transactions: %s\n", s.NumberOfTxs)
		fmt.Fprintf(w, "  control sum:  %s\n", s.ControlSum)
		for _, c := range s.Collections {
			fmt.Fprintf(w, "  %-35s %-4s %-10s %3s %12s  %s %s\n",
				c.ID, c.Method, c.Date, c.NumberOfTxs, c.ControlSum, c.IBAN, c.Owner)
		}
	}
}
