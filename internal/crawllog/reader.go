package crawllog

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/crawlconv/internal/model"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single line. Crawled URLs can be long (tracking
// parameters, data URIs) so the scanner default of 64KB is raised.
const maxLineSize = 1024 * 1024

// Input is a crawler output file loaded into memory.
type Input struct {
	// Path is the file the lines were read from.
	Path string

	// Lines holds every line of the file in order, without line terminators.
	Lines []string

	// Digest is the hex encoded BLAKE2b-256 hash of the raw file content.
	Digest string
}

// ReadFile loads a crawler output file.
// Failures to open or read the file wrap model.ErrInputUnreadable.
func ReadFile(path string) (*Input, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInputUnreadable, err)
	}

	lines, err := ReadLines(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", model.ErrInputUnreadable, path, err)
	}

	sum := blake2b.Sum256(data)
	return &Input{
		Path:   path,
		Lines:  lines,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}

// CheckReadable reports whether path can be opened for reading.
// The returned error wraps model.ErrInputUnreadable.
func CheckReadable(path string) error {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrInputUnreadable, err)
	}
	return f.Close()
}

// ReadLines reads every line from r.
//
// A leading byte order mark is honoured: a UTF-8 BOM is dropped and UTF-16
// input is transcoded to UTF-8. Input without a BOM is read as UTF-8.
// Trailing "\r" is removed, and the last line is returned even when the
// input does not end with a newline.
func ReadLines(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// IsBlank reports whether line carries no content.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// RemoveBlanks returns lines without blank entries and the number of
// lines that were removed. The input slice is not modified.
func RemoveBlanks(lines []string) ([]string, int) {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsBlank(line) {
			continue
		}
		kept = append(kept, line)
	}
	return kept, len(lines) - len(kept)
}
