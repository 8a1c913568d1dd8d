package table

import "slices"

// DefaultFiller is the text a filler cell renders as.
const DefaultFiller = "NA"

// CellKind distinguishes filler cells from value cells.
type CellKind int

const (
	// CellFiller means there is no value at this position.
	CellFiller CellKind = iota

	// CellValue holds a URL.
	CellValue
)

// Cell is one position of a row.
type Cell struct {
	// Kind is the cell kind.
	Kind CellKind

	// URL is the value of a value cell. Empty for filler cells.
	URL string
}

// Filler returns a filler cell.
func Filler() Cell {
	return Cell{Kind: CellFiller}
}

// Value returns a value cell holding url.
func Value(url string) Cell {
	return Cell{Kind: CellValue, URL: url}
}

// IsFiller reports whether c is a filler cell.
func (c Cell) IsFiller() bool {
	return c.Kind == CellFiller
}

// Text returns the cell content: the URL, or filler for a filler cell.
func (c Cell) Text(filler string) string {
	if c.IsFiller() {
		return filler
	}
	return c.URL
}

// Render returns the cell as it appears in the analyzer CSV. Every cell
// that is not the last one of its row carries a trailing comma, so a
// filler renders as "NA," in front of a value and as "NA" at the end.
func (c Cell) Render(filler string, last bool) string {
	if last {
		return c.Text(filler)
	}
	return c.Text(filler) + ","
}

// Row is an ordered sequence of cells.
type Row []Cell

// FillerCount returns the number of filler cells in r.
func (r Row) FillerCount() int {
	n := 0
	for _, c := range r {
		if c.IsFiller() {
			n++
		}
	}
	return n
}

// Texts returns the content of each cell.
func (r Row) Texts(filler string) []string {
	texts := make([]string, len(r))
	for i, c := range r {
		texts[i] = c.Text(filler)
	}
	return texts
}

// tierRow builds the row for a URL found in a tier: fillerCount filler
// cells followed by the URL.
func tierRow(fillerCount int, url string) Row {
	row := make(Row, 0, fillerCount+1)
	for range fillerCount {
		row = append(row, Filler())
	}
	return append(row, Value(url))
}

// Table is an ordered sequence of rows.
type Table struct {
	// Rows holds the rows in output order.
	Rows []Row
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the length of the longest row.
func (t *Table) Width() int {
	width := 0
	for _, r := range t.Rows {
		width = max(width, len(r))
	}
	return width
}

// Append adds row at the end of the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Insert places row at index pos, shifting later rows down.
// pos must be within [0, Len()].
func (t *Table) Insert(pos int, row Row) {
	t.Rows = slices.Insert(t.Rows, pos, row)
}

// IsRectangular reports whether every row has the same length.
func (t *Table) IsRectangular() bool {
	for _, r := range t.Rows {
		if len(r) != len(t.Rows[0]) {
			return false
		}
	}
	return true
}

// Matrix returns the cell texts of every row.
func (t *Table) Matrix(filler string) [][]string {
	m := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		m[i] = r.Texts(filler)
	}
	return m
}
