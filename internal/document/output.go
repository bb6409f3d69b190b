package document

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/sepa-pain/internal/bundle"
	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/report"
	"fjacquet/sepa-pain/internal/sepaerror"
	"fjacquet/sepa-pain/internal/wrapper"
)

// DefaultFilenameTemplate names output files after the message id.
const DefaultFilenameTemplate = "%msgId%"

const maxMessageIDLen = 35

// File is one generated output file.
type File = bundle.File

// OutputOptions select the files Output produces.
type OutputOptions struct {
	// FilenameTemplate may contain %msgId% and %initgPty%. It has no
	// extension.
	FilenameTemplate string
	// ControlList adds one control list per collection.
	ControlList       bool
	ControlListFormat string
	Report            report.Options
	// Zip packs all files into a single <name>.zip.
	Zip bool
	// Wrap puts the document into a hashed container envelope.
	Wrap bool
}

func (o OutputOptions) withDefaults() OutputOptions {
	if o.FilenameTemplate == "" {
		o.FilenameTemplate = DefaultFilenameTemplate
	}
	if o.ControlListFormat == "" {
		o.ControlListFormat = report.FormatCSV
	}
	return o
}

var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

// FileName expands template for this document. Path separators in the
// substituted values become hyphens.
func (d *Document) FileName(template string) string {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	return strings.NewReplacer(
		"%msgId%", pathSeparators.Replace(d.msgID),
		"%initgPty%", pathSeparators.Replace(d.initgPty),
	).Replace(template)
}

// Output renders the document and its companion files.
func (d *Document) Output(opts OutputOptions) ([]File, error) {
	return d.OutputAt(opts, d.clock.Now())
}

// OutputAt is Output with an explicit creation time.
func (d *Document) OutputAt(opts OutputOptions, now time.Time) ([]File, error) {
	opts = opts.withDefaults()
	name := d.FileName(opts.FilenameTemplate)

	data, err := d.SerializeAt(now)
	if err != nil {
		return nil, err
	}
	if opts.Wrap {
		if data, err = wrapper.Wrap(data, d.profile.MessageType(), now); err != nil {
			return nil, err
		}
	}
	files := []File{{Name: name + ".xml", Data: data}}

	if opts.ControlList {
		lists, err := d.controlLists(name, opts, now)
		if err != nil {
			return nil, err
		}
		files = append(files, lists...)
	}

	d.logger.Info("Output generated",
		logging.F(logging.FieldOutputFile, name),
		logging.F(logging.FieldCount, len(files)))

	if !opts.Zip {
		return files, nil
	}
	zipped, err := bundle.Zip(files, now)
	if err != nil {
		return nil, err
	}
	return []File{{Name: name + ".zip", Data: zipped}}, nil
}

func (d *Document) controlLists(name string, opts OutputOptions, now time.Time) ([]File, error) {
	gen := report.NewGenerator(d.logger, opts.Report)
	meta := report.Meta{
		FileName:     name + ".xml",
		MessageID:    d.msgID,
		CreationTime: dateutils.ToISODateTime(now),
		Initiator:    d.initgPty,
	}

	var files []File
	for _, c := range d.collections {
		if c.IsEmpty() {
			continue
		}
		data, err := gen.Generate(c.Snapshot(now), meta, opts.ControlListFormat)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name: fmt.Sprintf("%s.%s.ControlList.%s", name, pathSeparators.Replace(c.ID()), opts.ControlListFormat),
			Data: data,
		})
	}
	return files, nil
}

// SplitSerialize renders one document per non-empty collection. Message ids
// get a -001, -002, ... suffix and are shortened to stay within 35
// characters. File names follow the default template.
func (d *Document) SplitSerialize() ([]File, error) {
	return d.SplitSerializeAt(d.clock.Now())
}

// SplitSerializeAt is SplitSerialize with an explicit creation time.
func (d *Document) SplitSerializeAt(now time.Time) ([]File, error) {
	var files []File
	n := 0
	for _, c := range d.collections {
		if c.IsEmpty() {
			continue
		}
		n++
		msgID := splitMessageID(d.msgID, n)
		data, err := d.render(msgID, []*collection.Collection{c}, now)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: pathSeparators.Replace(msgID) + ".xml", Data: data})
	}
	if n == 0 {
		return nil, sepaerror.ErrEmptyDocument
	}
	return files, nil
}

func splitMessageID(msgID string, n int) string {
	suffix := fmt.Sprintf("-%03d", n)
	base := []rune(msgID)
	if limit := maxMessageIDLen - len(suffix); len(base) > limit {
		base = base[:limit]
	}
	return string(base) + suffix
}
