package model

import (
	"fmt"
	"strings"
)

// FileKind identifies the kind of crawler output being converted.
//
// The numeric values match the menu choices of the interactive flow
// (1 = crawled file, 2 = duplicates/to-crawl file), so a menu answer can be
// converted directly.
type FileKind int

const (
	// FileKindUnknown is the zero value and never valid for conversion.
	FileKindUnknown FileKind = iota

	// FileKindCrawled is a crawl log: origin URL, tier markers and data lines.
	// It is converted through the tiered table reconstruction.
	FileKindCrawled

	// FileKindLinks is a duplicates or to-crawl list: one URL per line.
	// It is converted to a link/occurrence table.
	FileKindLinks
)

// String returns the canonical name of the file kind.
func (k FileKind) String() string {
	switch k {
	case FileKindCrawled:
		return "crawled"
	case FileKindLinks:
		return "links"
	default:
		return "unknown"
	}
}

// Description returns the label shown in the interactive menu.
func (k FileKind) Description() string {
	switch k {
	case FileKindCrawled:
		return "Crawled file"
	case FileKindLinks:
		return "Duplicates/Tocrawl file"
	default:
		return "Unknown file"
	}
}

// FileKinds returns all valid kinds in menu order.
func FileKinds() []FileKind {
	return []FileKind{FileKindCrawled, FileKindLinks}
}

// ParseFileKind converts a name or menu number to a FileKind.
// Accepted values are "1", "crawled", "crawl", "2", "links", "duplicates"
// and "tocrawl" (case-insensitive).
func ParseFileKind(s string) (FileKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "crawled", "crawl":
		return FileKindCrawled, nil
	case "2", "links", "duplicates", "tocrawl", "to-crawl":
		return FileKindLinks, nil
	default:
		return FileKindUnknown, fmt.Errorf("%w: %q", ErrUnknownFileKind, s)
	}
}
