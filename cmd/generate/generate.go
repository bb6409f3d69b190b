// Package generate handles the generate command
package generate

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fjacquet/sepa-pain/cmd/common"
	"fjacquet/sepa-pain/cmd/root"
	"fjacquet/sepa-pain/internal/batch"
	csvinput "fjacquet/sepa-pain/internal/common"
	"fjacquet/sepa-pain/internal/fileutils"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
	"fjacquet/sepa-pain/internal/store"
)

// Flags holds the generate command flags
type Flags struct {
	Version     string
	MsgID       string
	InitgPty    string
	Zip         bool
	ControlList bool
	MultiFile   bool
	Wrap        bool
	Bundle      string
	Quiet       bool
}

var flags Flags

// Cmd represents the generate command
var Cmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate pain.001/pain.008 XML files",
	Long: `Generate SEPA credit transfer (pain.001) or direct debit (pain.008) XML
files from YAML batch files or CSV payment lists.

Input is taken from the arguments or from --input, which may name a file or a
directory. Every YAML file carries its own schema version and header; CSV
files use --version, --msg-id and the configured initiating party.`,
	RunE: generateFunc,
}

func init() {
	Cmd.Flags().StringVar(&flags.Version, "version", "", "Schema version, e.g. pain.008.001.02 (default from config)")
	Cmd.Flags().StringVar(&flags.MsgID, "msg-id", "", "Message id for CSV input (generated when empty)")
	Cmd.Flags().StringVar(&flags.InitgPty, "initiating-party", "", "Initiating party name (default from config)")
	Cmd.Flags().BoolVar(&flags.Zip, "zip", false, "Pack each document with its companion files into a zip")
	Cmd.Flags().BoolVar(&flags.ControlList, "control-list", false, "Write a control list per collection")
	Cmd.Flags().BoolVar(&flags.MultiFile, "multi-file", false, "Write one document per collection")
	Cmd.Flags().BoolVar(&flags.Wrap, "wrap", false, "Wrap documents in a hashed container envelope")
	Cmd.Flags().StringVar(&flags.Bundle, "bundle", "", "Pack all YAML inputs into this single zip file")
	Cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Do not print document summaries")
}

func generateFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	log := c.GetLogger()

	paths, err := inputPaths(args)
	if err != nil {
		return err
	}

	defaults, err := Defaults(c.Defaults(), flags)
	if err != nil {
		return err
	}
	opts := Options(c.BatchOptions(), cmd, flags)
	outDir := c.GetConfig().Output.Directory
	proc := c.NewProcessor(defaults, opts)

	log.Info("Generating documents",
		logging.F(logging.FieldCount, len(paths)),
		logging.F(logging.FieldVersion, defaults.Version.String()),
		logging.F("output_dir", outDir))

	if flags.Bundle != "" {
		return writeBundle(proc, paths, filepath.Join(outDir, flags.Bundle), log)
	}

	results := Generate(proc, paths, CSVInput{
		Defaults:  defaults,
		MsgID:     flags.MsgID,
		Delimiter: c.GetConfig().Delimiter(),
	})
	written, err := common.WriteResults(results, outDir, log)

	if !flags.Quiet {
		money := c.GetConfig().ReportOptions().MoneyFormat
		for _, res := range results {
			if res.Err == nil {
				common.PrintSummary(cmd.OutOrStdout(), res, money)
			}
		}
	}
	log.Info("Generation finished", logging.F(logging.FieldCount, written))
	return err
}

func inputPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return common.InputFiles(root.SharedFlags.Input)
	}
	var paths []string
	for _, arg := range args {
		files, err := common.InputFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

// Defaults applies the command flags to the configured header defaults.
func Defaults(base batch.Defaults, f Flags) (batch.Defaults, error) {
	if f.Version != "" {
		v, err := rules.ParseVersion(f.Version)
		if err != nil {
			return base, err
		}
		base.Version = v
	}
	if f.InitgPty != "" {
		base.InitgPty = f.InitgPty
	}
	return base, nil
}

// Options applies the flags the user actually set to the configured
// processor options.
func Options(base batch.Options, cmd *cobra.Command, f Flags) batch.Options {
	changed := func(name string) bool {
		return cmd != nil && cmd.Flags().Changed(name)
	}
	if changed("zip") {
		base.Output.Zip = f.Zip
	}
	if changed("control-list") {
		base.Output.ControlList = f.ControlList
	}
	if changed("multi-file") {
		base.MultiFile = f.MultiFile
	}
	if changed("wrap") {
		base.Output.Wrap = f.Wrap
	}
	return base
}

// CSVInput describes how CSV payment lists become batches.
type CSVInput struct {
	Defaults  batch.Defaults
	MsgID     string
	Delimiter rune
}

// Generate renders every path. YAML batches are handed to g together so
// they are processed concurrently; CSV files are grouped into a batch
// first. Results keep the order of paths.
func Generate(g common.Generator, paths []string, in CSVInput) []batch.Result {
	results := make([]batch.Result, len(paths))

	var yamlPaths []string
	var yamlIndex []int
	for i, path := range paths {
		if !common.IsCSV(path) {
			yamlPaths = append(yamlPaths, path)
			yamlIndex = append(yamlIndex, i)
			continue
		}

		b, err := ReadCSVBatch(path, in)
		if err != nil {
			results[i] = batch.Result{File: path, Err: err}
			continue
		}
		results[i] = g.ProcessBatch(path, b)
	}

	if len(yamlPaths) > 0 {
		for j, res := range g.Process(yamlPaths) {
			results[yamlIndex[j]] = res
		}
	}
	return results
}

// ReadCSVBatch reads a CSV payment list into a batch for the default
// version.
func ReadCSVBatch(path string, in CSVInput) (*store.Batch, error) {
	profile, err := rules.Resolve(in.Defaults.Version)
	if err != nil {
		return nil, err
	}

	rows, err := csvinput.ReadPaymentCSV(path, in.Delimiter)
	if err != nil {
		return nil, err
	}
	colls, err := csvinput.GroupPayments(profile, rows)
	if err != nil {
		return nil, &sepaerror.InputError{FilePath: path, Reason: "cannot group payment rows", Err: err}
	}
	if len(colls) == 0 {
		return nil, &sepaerror.InputError{FilePath: path, Reason: "no payment rows"}
	}

	return &store.Batch{
		Version:     in.Defaults.Version.String(),
		MsgID:       in.MsgID,
		Collections: colls,
	}, nil
}

func writeBundle(proc *batch.Processor, paths []string, target string, log logging.Logger) error {
	for _, path := range paths {
		if common.IsCSV(path) {
			return fmt.Errorf("--bundle takes YAML batch files only: %s", path)
		}
	}

	data, err := proc.Bundle(paths)
	if err != nil {
		return fmt.Errorf("failed to bundle documents: %w", err)
	}
	if err := fileutils.WriteFile(target, data, 0o600); err != nil {
		return err
	}
	log.Info("Bundle written",
		logging.F(logging.FieldOutputFile, target),
		logging.F(logging.FieldCount, len(paths)))
	return nil
}
