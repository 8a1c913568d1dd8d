package model

import (
	"fmt"
	"strings"
)

// Format is the output format of a conversion.
type Format int

const (
	// FormatCSV is the analyzer format: the padded crawl table or the
	// link/occurrence table.
	FormatCSV Format = iota

	// FormatText writes the (cleaned) input lines as-is.
	FormatText

	// FormatHTML writes the input lines as an HTML page for browsing links.
	FormatHTML

	// FormatMarkdown writes the crawl or occurrence table as a Markdown table.
	FormatMarkdown

	// FormatJSON writes the crawl or occurrence table as JSON.
	FormatJSON
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	case FormatHTML:
		return "html"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Extension returns the file extension, including the dot, used when an
// output name is derived from the input name.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat converts a format name to a Format.
// Common aliases such as "text", "htm" and "markdown" are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatCSV, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}
