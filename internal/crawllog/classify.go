package crawllog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// tierSeparator is the literal that, together with a leading digit, marks
// a tier line.
const tierSeparator = " from "

// Kind is the classification of a single crawl log line.
type Kind int

const (
	// KindData is a discovered URL.
	KindData Kind = iota

	// KindTierMarker is a "<count> from <url>" line.
	KindTierMarker

	// KindBlank is an empty or whitespace-only line.
	KindBlank

	// KindOrigin is the first line of a crawl log. Classify never returns it;
	// position decides, not content.
	KindOrigin
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindTierMarker:
		return "tier"
	case KindBlank:
		return "blank"
	case KindOrigin:
		return "origin"
	default:
		return "unknown"
	}
}

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("malformed tier marker")

// ParseError reports a tier marker whose count is not a valid
// non-negative integer.
type ParseError struct {
	// LineNumber is the 1-based position of the line in the input.
	// Zero when the line was parsed outside of a file.
	LineNumber int

	// Line is the offending line.
	Line string

	// Err is the underlying conversion error.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s %q: %v", e.LineNumber, ErrParse, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", ErrParse, e.Line, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParse) true for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// TierMarker is a parsed "<count> from <url>" line.
type TierMarker struct {
	// DeclaredCount is the number of data lines that belong to this tier.
	DeclaredCount int

	// ReferencedURL is the page the tier's URLs were discovered on.
	ReferencedURL string
}

// IsTierMarker reports whether line starts with a decimal digit and
// contains " from ".
func IsTierMarker(line string) bool {
	if line == "" {
		return false
	}
	c := line[0]
	return c >= '0' && c <= '9' && strings.Contains(line, tierSeparator)
}

// Classify returns the kind of a line that is not the first line of the log.
func Classify(line string) Kind {
	switch {
	case IsBlank(line):
		return KindBlank
	case IsTierMarker(line):
		return KindTierMarker
	default:
		return KindData
	}
}

// ParseTierMarker parses a tier line.
//
// The count is the text before the first space. The referenced URL is
// everything after the second space; a line with fewer than two spaces
// yields an empty URL. A count that is not a non-negative integer returns
// a *ParseError.
func ParseTierMarker(line string) (TierMarker, error) {
	countText := line
	if i := strings.IndexByte(line, ' '); i >= 0 {
		countText = line[:i]
	}

	count, err := strconv.Atoi(countText)
	if err == nil && count < 0 {
		err = fmt.Errorf("negative count %d", count)
	}
	if err != nil {
		return TierMarker{}, &ParseError{Line: line, Err: err}
	}

	return TierMarker{
		DeclaredCount: count,
		ReferencedURL: referencedURL(line),
	}, nil
}

// referencedURL returns the text after the second space of line.
func referencedURL(line string) string {
	first := strings.IndexByte(line, ' ')
	if first < 0 {
		return ""
	}
	second := strings.IndexByte(line[first+1:], ' ')
	if second < 0 {
		return ""
	}
	return line[first+1+second+1:]
}
