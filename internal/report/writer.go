package report

import (
	"fmt"
	"io"

	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
	"github.com/nao1215/crawlconv/internal/table"
)

// Document is the content handed to a Writer.
// Which fields a writer reads depends on Kind and on the format.
type Document struct {
	// Title names the document, usually the input file name.
	Title string

	// Kind is the kind of crawler output that was converted.
	Kind model.FileKind

	// Lines are the input lines after cleaning.
	Lines []string

	// Table is the padded crawl table. Set for crawled files.
	Table *table.Table

	// Occurrences are the unique links with their counts. Set for
	// duplicates and to-crawl files.
	Occurrences []occurrence.Entry
}

// Writer defines the interface for conversion output.
type Writer interface {
	// Write outputs doc to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(doc *Document) (int, error)
}

// Options are the settings shared by every format.
type Options struct {
	// Filler is the text of filler cells, written verbatim.
	Filler string

	// PrettyPrint indents JSON output.
	PrettyPrint bool
}

// ForFormat returns the Writer for format.
func ForFormat(format model.Format, output io.Writer, opts Options) (Writer, error) {
	switch format {
	case model.FormatCSV:
		return NewCSVWriter(output, WithFiller(opts.Filler)), nil
	case model.FormatText:
		return NewTextWriter(output), nil
	case model.FormatHTML:
		return NewHTMLWriter(output), nil
	case model.FormatMarkdown:
		return NewMarkdownWriter(output, opts.Filler), nil
	case model.FormatJSON:
		var jsonOpts []JSONWriterOption
		if opts.PrettyPrint {
			jsonOpts = append(jsonOpts, WithPrettyPrint())
		}
		return NewJSONWriter(output, opts.Filler, jsonOpts...), nil
	default:
		return nil, fmt.Errorf("%w: %v", model.ErrUnknownFormat, format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// writeString writes s to the output in one call.
func (b baseWriter) writeString(s string) (int, error) {
	return io.WriteString(b.output, s)
}

// paddedMatrix returns the cell texts of t with every row widened to the
// table width, so tabular formats never see ragged rows.
func paddedMatrix(t *table.Table, filler string) [][]string {
	if t == nil {
		return nil
	}
	m := t.Matrix(filler)
	if t.IsRectangular() {
		return m
	}
	width := t.Width()
	for i, row := range m {
		for len(row) < width {
			row = append(row, filler)
		}
		m[i] = row
	}
	return m
}
