package table

import "strings"

// Resolve finds where the rows of a tier that references referencedURL
// belong.
//
// Every value cell containing referencedURL as a substring is a match.
// The scan does not stop at the first match: each match moves
// insertPosition to the row after it, so the last matching row wins. Each
// match also adds the number of filler cells in its row to fillerCount,
// which starts at 1. Without a match the tier is appended at the end of
// the table with one filler cell, reported as insertPosition -1.
func Resolve(t *Table, referencedURL string) (insertPosition, fillerCount int) {
	insertPosition = -1
	fillerCount = 1

	for i, row := range t.Rows {
		for _, cell := range row {
			if cell.IsFiller() || !strings.Contains(cell.URL, referencedURL) {
				continue
			}
			insertPosition = i + 1
			fillerCount += row.FillerCount()
		}
	}

	return insertPosition, fillerCount
}
