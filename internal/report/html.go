package report

import (
	"bytes"
	"io"
	"strconv"

	"github.com/nao1215/crawlconv/internal/crawllog"
	"github.com/nao1215/crawlconv/internal/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLWriter outputs a page for browsing the converted links.
//
// For a crawl log the origin becomes the page title and first heading,
// every tier marker starts a new section with its own heading, and every
// data line becomes a link in the current section. For a duplicates or
// to-crawl list every line becomes a link.
type HTMLWriter struct {
	baseWriter
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer) *HTMLWriter {
	return &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs doc.Lines as an HTML5 document.
func (w *HTMLWriter) Write(doc *Document) (int, error) {
	root, body := newPage(pageTitle(doc))

	if doc.Kind == model.FileKindLinks {
		writeLinkList(body, doc.Lines)
	} else {
		writeCrawlSections(body, doc.Lines)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return 0, err
	}
	buf.WriteString("\n")

	return w.output.Write(buf.Bytes())
}

// pageTitle picks the origin of a crawl log, falling back to doc.Title.
func pageTitle(doc *Document) string {
	if doc.Kind != model.FileKindLinks && len(doc.Lines) > 0 {
		return doc.Lines[0]
	}
	if doc.Title != "" {
		return doc.Title
	}
	return "Links"
}

// newPage builds the document skeleton and returns its root and body.
func newPage(title string) (*html.Node, *html.Node) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	titleNode := element(atom.Title)
	titleNode.AppendChild(text(title))
	head.AppendChild(titleNode)
	htmlNode.AppendChild(head)

	body := element(atom.Body)
	htmlNode.AppendChild(body)

	return root, body
}

// writeCrawlSections adds the origin heading and one section per tier.
func writeCrawlSections(body *html.Node, lines []string) {
	if len(lines) == 0 {
		return
	}

	h1 := element(atom.H1)
	h1.AppendChild(anchor(lines[0]))
	body.AppendChild(h1)

	var list *html.Node
	tier := 0
	for _, line := range lines[1:] {
		switch crawllog.Classify(line) {
		case crawllog.KindBlank:
			continue
		case crawllog.KindTierMarker:
			tier++
			section := element(atom.Section, html.Attribute{Key: "id", Val: "tier-" + strconv.Itoa(tier)})
			h2 := element(atom.H2)
			h2.AppendChild(text(line))
			section.AppendChild(h2)
			list = element(atom.Ul)
			section.AppendChild(list)
			body.AppendChild(section)
		default:
			if list == nil {
				list = element(atom.Ul)
				body.AppendChild(list)
			}
			list.AppendChild(listItem(line))
		}
	}
}

// writeLinkList adds one list item per non-blank line.
func writeLinkList(body *html.Node, lines []string) {
	list := element(atom.Ul)
	for _, line := range lines {
		if crawllog.IsBlank(line) {
			continue
		}
		list.AppendChild(listItem(line))
	}
	body.AppendChild(list)
}

func listItem(url string) *html.Node {
	li := element(atom.Li)
	li.AppendChild(anchor(url))
	return li
}

func anchor(url string) *html.Node {
	a := element(atom.A, html.Attribute{Key: "href", Val: url})
	a.AppendChild(text(url))
	return a
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
