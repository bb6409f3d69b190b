package batch

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"fjacquet/sepa-pain/internal/bundle"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/document"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/store"
)

// Options control how the processor renders documents.
type Options struct {
	Output document.OutputOptions
	// MultiFile writes one document per collection. Control lists and
	// wrapping do not apply in this mode.
	MultiFile bool
	// Workers caps the number of files processed at once. Zero means one
	// per CPU.
	Workers int
	Clock   dateutils.Clock
}

// Result is the outcome for one input file.
type Result struct {
	File     string
	Files    []bundle.File
	Summary  document.Summary
	DueDates DateRange
	Err      error
}

// Processor builds and renders documents from batch files.
type Processor struct {
	logger   logging.Logger
	source   store.Source
	defaults Defaults
	opts     Options
	docOpts  []document.Option
}

// NewProcessor creates a processor reading batches from source. docOpts
// are applied to every document it builds.
func NewProcessor(logger logging.Logger, source store.Source, defaults Defaults, opts Options, docOpts ...document.Option) *Processor {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if opts.Clock == nil {
		opts.Clock = dateutils.SystemClock
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	all := append([]document.Option{}, docOpts...)
	all = append(all, document.WithClock(opts.Clock), document.WithLogger(logger))

	return &Processor{
		logger:   logger,
		source:   source,
		defaults: defaults,
		opts:     opts,
		docOpts:  all,
	}
}

// ProcessFile loads and renders a single batch file.
func (p *Processor) ProcessFile(path string) Result {
	b, err := p.source.LoadBatch(path)
	if err != nil {
		return Result{File: path, Err: err}
	}
	return p.ProcessBatch(path, b)
}

// ProcessBatch renders an already loaded batch. name only labels the
// result.
func (p *Processor) ProcessBatch(name string, b *store.Batch) Result {
	res := Result{File: name}

	d, err := Build(b, p.defaults, p.docOpts...)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", filepath.Base(name), err)
		return res
	}

	now := p.opts.Clock.Now()
	files, err := p.render(d, now)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", filepath.Base(name), err)
		return res
	}

	res.Files = files
	res.Summary = d.Summary(now)
	res.DueDates = DueDates(res.Summary.Collections)
	return res
}

func (p *Processor) render(d *document.Document, now time.Time) ([]bundle.File, error) {
	if !p.opts.MultiFile {
		return d.OutputAt(p.opts.Output, now)
	}

	files, err := d.SplitSerializeAt(now)
	if err != nil || !p.opts.Output.Zip {
		return files, err
	}
	zipped, err := bundle.Zip(files, now)
	if err != nil {
		return nil, err
	}
	return []bundle.File{{Name: d.FileName(p.opts.Output.FilenameTemplate) + ".zip", Data: zipped}}, nil
}

// Process handles paths concurrently. Results are in the order of paths
// and a failing file does not stop the others.
func (p *Processor) Process(paths []string) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}

	workers := p.opts.Workers
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int, len(paths))
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.ProcessFile(paths[i])
			}
		}()
	}
	wg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			p.logger.WithError(r.Err).Warn("Batch file failed", logging.F(logging.FieldInputFile, r.File))
		}
	}
	p.logger.Info("Processed batch files",
		logging.F(logging.FieldCount, len(paths)),
		logging.F("failed", failed),
		logging.F("workers", workers))
	return results
}

// Bundle builds one document per path and packs all of them, with their
// companion files, into a single zip archive. Nothing is returned unless
// every file builds.
func (p *Processor) Bundle(paths []string) ([]byte, error) {
	mf := document.NewMultiFile()
	for _, path := range paths {
		b, err := p.source.LoadBatch(path)
		if err != nil {
			return nil, err
		}
		d, err := Build(b, p.defaults, p.docOpts...)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		mf.Add(d)
	}

	data, err := mf.ZipAt(p.opts.Output, p.opts.Clock.Now())
	if err != nil {
		return nil, err
	}
	p.logger.Info("Bundled documents", logging.F(logging.FieldCount, len(paths)))
	return data, nil
}
