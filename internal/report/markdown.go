package report

import (
	"io"
	"strconv"

	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/occurrence"
	"github.com/nao1215/crawlconv/internal/table"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs the crawl table or the occurrence table as a
// Markdown document.
type MarkdownWriter struct {
	baseWriter

	// filler is the text of filler cells.
	filler string
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, filler string) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		filler:     filler,
	}
}

// Write outputs doc in Markdown format.
func (w *MarkdownWriter) Write(doc *Document) (int, error) {
	md := markdown.NewMarkdown(w.output)

	title := doc.Title
	if title == "" {
		title = "Crawl"
	}
	md.H1(title)
	md.PlainText("")

	if doc.Kind == model.FileKindLinks {
		w.writeOccurrences(md, doc.Occurrences)
	} else {
		w.writeTable(md, doc.Table)
	}

	return len(md.String()), md.Build()
}

// writeTable writes the crawl table with one column per tier.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, t *table.Table) {
	rows := paddedMatrix(t, w.filler)
	if len(rows) == 0 {
		md.Note("The crawl log is empty.")
		return
	}

	md.PlainTextf("%d rows, %d columns. Origin: `%s`", t.Len(), t.Width(), rows[0][0])
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: tierHeader(t.Width()),
		Rows:   rows,
	})
}

// tierHeader returns "Origin", "Tier 1", ..., "Tier width-1".
func tierHeader(width int) []string {
	header := make([]string, width)
	for i := range header {
		if i == 0 {
			header[i] = "Origin"
			continue
		}
		header[i] = "Tier " + strconv.Itoa(i)
	}
	return header
}

// writeOccurrences writes the link/occurrence table.
func (w *MarkdownWriter) writeOccurrences(md *markdown.Markdown, entries []occurrence.Entry) {
	if len(entries) == 0 {
		md.Note("The link list is empty.")
		return
	}

	md.PlainTextf("%d unique links, %d in total.", len(entries), occurrence.Total(entries))
	md.PlainText("")

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Link, strconv.Itoa(e.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Link", "Occurrence"},
		Rows:   rows,
	})
}
