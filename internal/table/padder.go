package table

// Pad appends filler cells to every row shorter than the longest one.
// Running it on a rectangular table changes nothing.
func Pad(t *Table) {
	width := t.Width()
	for i, row := range t.Rows {
		for len(row) < width {
			row = append(row, Filler())
		}
		t.Rows[i] = row
	}
}
