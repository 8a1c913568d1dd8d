package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
	"github.com/nao1215/crawlconv/internal/table"
)

// occurrenceHeader is the first line of a link/occurrence CSV.
const occurrenceHeader = "Link,Occurrence\n"

// CSVWriter outputs the format read by the analyzer.
//
// A crawl table is written one row per line. Every cell that is not the
// last of its row is followed by a comma, and rows are separated by "\n"
// with no newline after the last row. URLs are written verbatim.
//
// A duplicates or to-crawl list is written as a "Link,Occurrence" header
// followed by one "<link>,<count>" line per unique link, with commas
// removed from the link.
type CSVWriter struct {
	baseWriter

	// filler is the text of filler cells.
	filler string
}

// CSVWriterOption configures a CSVWriter.
type CSVWriterOption func(*CSVWriter)

// WithFiller sets the text written for filler cells.
func WithFiller(filler string) CSVWriterOption {
	return func(w *CSVWriter) {
		w.filler = filler
	}
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer, opts ...CSVWriterOption) *CSVWriter {
	w := &CSVWriter{
		baseWriter: newBaseWriter(output),
		filler:     table.DefaultFiller,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the crawl table or the occurrence table depending on the
// document kind.
func (w *CSVWriter) Write(doc *Document) (int, error) {
	if doc.Kind == model.FileKindLinks {
		return w.WriteOccurrences(doc.Occurrences)
	}
	return w.WriteTable(doc.Table)
}

// WriteTable outputs a crawl table.
func (w *CSVWriter) WriteTable(t *table.Table) (int, error) {
	if t == nil {
		return 0, nil
	}

	var sb strings.Builder
	for i, row := range t.Rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, cell := range row {
			sb.WriteString(cell.Render(w.filler, j == len(row)-1))
		}
	}

	return w.writeString(sb.String())
}

// WriteOccurrences outputs a link/occurrence table.
func (w *CSVWriter) WriteOccurrences(entries []occurrence.Entry) (int, error) {
	var sb strings.Builder
	sb.WriteString(occurrenceHeader)
	for _, e := range entries {
		sb.WriteString(occurrence.StripCommas(e.Link))
		sb.WriteString(",")
		sb.WriteString(strconv.Itoa(e.Count))
		sb.WriteString("\n")
	}

	return w.writeString(sb.String())
}
