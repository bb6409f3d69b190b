// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/sepa-pain/internal/batch"
	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/fileutils"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/store"
)

// ErrNoInput is returned when no input file was given or found.
var ErrNoInput = errors.New("no input files")

// Generator is what the generate command needs from a batch processor.
type Generator interface {
	Process(paths []string) []batch.Result
	ProcessBatch(name string, b *store.Batch) batch.Result
}

var _ Generator = (*batch.Processor)(nil)

// InputFiles expands input into the files to process. A directory yields
// every YAML and CSV file below it.
func InputFiles(input string) ([]string, error) {
	if input == "" {
		return nil, ErrNoInput
	}
	if fileutils.FileExists(input) {
		return []string{input}, nil
	}
	if !fileutils.DirectoryExists(input) {
		return nil, fmt.Errorf("input not found: %s", input)
	}

	files, err := fileutils.ListFilesWithExtension(input, ".yaml", ".yml", ".csv")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInput, input)
	}
	return files, nil
}

// IsCSV reports whether path names a CSV payment list.
func IsCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

// WriteResults writes the files of every successful result into outDir and
// returns the number of files written. Failed results are logged and
// reported together in the returned error.
func WriteResults(results []batch.Result, outDir string, log logging.Logger) (int, error) {
	written := 0
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.WithError(res.Err).Error("Failed to generate document",
				logging.F(logging.FieldInputFile, res.File))
			continue
		}

		paths, err := fileutils.WriteFiles(outDir, res.Files)
		written += len(paths)
		if err != nil {
			failed++
			log.WithError(err).Error("Failed to write output",
				logging.F(logging.FieldInputFile, res.File))
			continue
		}

		log.Info("Document generated",
			logging.F(logging.FieldInputFile, res.File),
			logging.F(logging.FieldMessageID, res.Summary.MessageID),
			logging.F(logging.FieldTransaction, res.Summary.Count),
			logging.F(logging.FieldControlSum, res.Summary.ControlSum.StringFixed(2)))
	}

	if failed > 0 {
		return written, fmt.Errorf("%d of %d input files failed", failed, len(results))
	}
	return written, nil
}

// PrintSummary writes a short human readable overview of a generated
// document to w.
func PrintSummary(w io.Writer, res batch.Result, money currencyutils.MoneyFormat) {
	s := res.Summary
	fmt.Fprintf(w, "%s  %s  %s\n", s.Version, s.MessageID, s.Initiator)
	fmt.Fprintf(w, "  transactions: %d  control sum: %s\n", s.Count, currencyutils.FormatAmount(s.ControlSum, money))
	if r := res.DueDates.String(); r != "" {
		fmt.Fprintf(w, "  due dates: %s\n", strings.Replace(r, "_", " .. ", 1))
	}
	for _, c := range s.Collections {
		fmt.Fprintf(w, "  %-35s %3d  %s\n", c.Reference, c.Count, currencyutils.FormatAmount(c.ControlSum, money))
	}
	for _, f := range res.Files {
		fmt.Fprintf(w, "  -> %s\n", f.Name)
	}
}
