package occurrence

import (
	"strings"

	"github.com/nao1215/crawlconv/internal/crawllog"
)

// Entry is a unique link and the number of times it was listed.
type Entry struct {
	// Link is the line as it appeared in the input.
	Link string `json:"link"`

	// Count is the number of lines equal to Link.
	Count int `json:"occurrence"`
}

// Count returns one Entry per distinct line, in the order each line was
// first seen. Blank lines are not counted.
func Count(lines []string) []Entry {
	index := make(map[string]int, len(lines))
	entries := make([]Entry, 0, len(lines))

	for _, line := range lines {
		if crawllog.IsBlank(line) {
			continue
		}
		if i, ok := index[line]; ok {
			entries[i].Count++
			continue
		}
		index[line] = len(entries)
		entries = append(entries, Entry{Link: line, Count: 1})
	}

	return entries
}

// Total returns the sum of all counts.
func Total(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// StripCommas removes every comma from link so it fits in one CSV field.
func StripCommas(link string) string {
	return strings.ReplaceAll(link, ",", "")
}
