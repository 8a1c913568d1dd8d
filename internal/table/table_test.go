package table

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nao1215/crawlconv/internal/crawllog"
)

// texts renders every row with "-" for filler cells so expectations stay
// readable.
func texts(t *Table) [][]string {
	return t.Matrix("-")
}

func build(t *testing.T, lines []string) (*Table, BuildStats) {
	t.Helper()

	b := NewBuilder()
	tbl, err := b.Build(lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tbl, b.Stats()
}

func TestCellRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cell Cell
		last bool
		want string
	}{
		{name: "filler before a value", cell: Filler(), last: false, want: "NA,"},
		{name: "filler at the end", cell: Filler(), last: true, want: "NA"},
		{name: "value before a filler", cell: Value("http://a.com"), last: false, want: "http://a.com,"},
		{name: "value at the end", cell: Value("http://a.com"), last: true, want: "http://a.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cell.Render(DefaultFiller, tt.last); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("no match appends with one filler", func(t *testing.T) {
		t.Parallel()

		tbl := &Table{Rows: []Row{{Value("http://a.com")}}}
		pos, fillers := Resolve(tbl, "http://zzz.com")
		if pos != -1 || fillers != 1 {
			t.Errorf("expected (-1, 1), got (%d, %d)", pos, fillers)
		}
	})

	t.Run("match on origin row", func(t *testing.T) {
		t.Parallel()

		tbl := &Table{Rows: []Row{{Value("http://a.com")}}}
		pos, fillers := Resolve(tbl, "http://a.com")
		if pos != 1 || fillers != 1 {
			t.Errorf("expected (1, 1), got (%d, %d)", pos, fillers)
		}
	})

	t.Run("filler count grows with depth of the matched row", func(t *testing.T) {
		t.Parallel()

		tbl := &Table{Rows: []Row{
			{Value("http://a.com")},
			{Filler(), Value("http://b.com")},
			{Filler(), Filler(), Value("http://c.com")},
		}}
		pos, fillers := Resolve(tbl, "http://c.com")
		if pos != 3 || fillers != 3 {
			t.Errorf("expected (3, 3), got (%d, %d)", pos, fillers)
		}
	})

	t.Run("substring matches and the last match wins", func(t *testing.T) {
		t.Parallel()

		tbl := &Table{Rows: []Row{
			{Value("http://a.com")},
			{Filler(), Value("http://a.com/x")},
			{Filler(), Value("http://b.com")},
			{Filler(), Value("http://a.com/xy")},
		}}
		pos, fillers := Resolve(tbl, "http://a.com/x")
		if pos != 4 {
			t.Errorf("expected last matching row to decide position 4, got %d", pos)
		}
		if fillers != 3 {
			t.Errorf("expected fillers from both matched rows (1+1+1), got %d", fillers)
		}
	})

	t.Run("filler cells never match", func(t *testing.T) {
		t.Parallel()

		tbl := &Table{Rows: []Row{{Value("http://a.com")}, {Filler(), Value("http://b.com")}}}
		pos, fillers := Resolve(tbl, "")
		if pos != 2 {
			t.Errorf("empty reference matches every value cell, expected 2, got %d", pos)
		}
		if fillers != 2 {
			t.Errorf("expected one match per value cell (1+0+1), got %d", fillers)
		}
	})
}

func TestBuilderScenarios(t *testing.T) {
	t.Parallel()

	t.Run("single tier below the origin", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"2 from http://a.com",
			"http://b.com",
			"http://c.com",
		})

		want := [][]string{
			{"http://a.com"},
			{"-", "http://b.com"},
			{"-", "http://c.com"},
		}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %q, got %q", want, got)
		}

		Pad(tbl)
		want[0] = []string{"http://a.com", "-"}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("after padding expected %q, got %q", want, got)
		}
		if stats.Tiers != 1 || stats.RowsInserted != 2 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("nested tier is placed below its parent row", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, []string{
			"http://a.com",
			"2 from http://a.com",
			"http://a.com/x",
			"http://a.com/y",
			"1 from http://a.com/x",
			"http://a.com/x/z",
		})

		want := [][]string{
			{"http://a.com"},
			{"-", "http://a.com/x"},
			{"-", "-", "http://a.com/x/z"},
			{"-", "http://a.com/y"},
		}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("unmatched reference appends at the end with one filler", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"1 from http://a.com",
			"http://b.com",
			"2 from http://zzz.com",
			"http://q1.com",
			"http://q2.com",
		})

		want := [][]string{
			{"http://a.com"},
			{"-", "http://b.com"},
			{"-", "http://q1.com"},
			{"-", "http://q2.com"},
		}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
		if stats.UnmatchedTiers != 1 {
			t.Errorf("expected 1 unmatched tier, got %d", stats.UnmatchedTiers)
		}
	})

	t.Run("under-supplied tier inserts what is available", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"3 from http://a.com",
			"http://b.com",
		})

		if tbl.Len() != 2 {
			t.Errorf("expected 2 rows, got %d", tbl.Len())
		}
		if stats.ShortTiers != 1 {
			t.Errorf("expected 1 short tier, got %d", stats.ShortTiers)
		}
	})

	t.Run("new marker interrupts the current tier", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"3 from http://a.com",
			"http://b.com",
			"1 from http://b.com",
			"http://c.com",
			"http://d.com",
		})

		want := [][]string{
			{"http://a.com"},
			{"-", "http://b.com"},
			{"-", "-", "http://c.com"},
		}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
		if stats.ShortTiers != 1 {
			t.Errorf("expected the interrupted tier to be short, got %d", stats.ShortTiers)
		}
		if stats.IgnoredLines != 1 {
			t.Errorf("expected the extra data line to be ignored, got %d", stats.IgnoredLines)
		}
	})

	t.Run("data lines outside a tier are ignored", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"http://stray.com",
			"0 from http://a.com",
			"http://after-zero.com",
		})

		if tbl.Len() != 1 {
			t.Errorf("expected only the origin row, got %q", texts(tbl))
		}
		if stats.IgnoredLines != 2 {
			t.Errorf("expected 2 ignored lines, got %d", stats.IgnoredLines)
		}
	})

	t.Run("blank lines do not consume tier count", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{
			"http://a.com",
			"",
			"1 from http://a.com",
			"  ",
			"http://b.com",
		})

		want := [][]string{{"http://a.com"}, {"-", "http://b.com"}}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
		if stats.BlankLines != 2 {
			t.Errorf("expected 2 blank lines, got %d", stats.BlankLines)
		}
	})

	t.Run("origin line is never classified", func(t *testing.T) {
		t.Parallel()

		tbl, stats := build(t, []string{"5 from http://a.com"})
		want := [][]string{{"5 from http://a.com"}}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected %q, got %q", want, got)
		}
		if stats.Tiers != 0 {
			t.Errorf("expected no tiers, got %d", stats.Tiers)
		}
	})

	t.Run("empty input yields an empty table", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, nil)
		if tbl.Len() != 0 || tbl.Width() != 0 {
			t.Errorf("expected empty table, got %q", texts(tbl))
		}
	})
}

func TestBuilderParseError(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	tbl, err := b.Build([]string{
		"http://a.com",
		"1x from http://a.com",
		"http://b.com",
	})

	if tbl != nil {
		t.Error("expected no table on parse error")
	}
	if !errors.Is(err, crawllog.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	var pe *crawllog.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *crawllog.ParseError, got %T", err)
	}
	if pe.LineNumber != 2 {
		t.Errorf("expected line 2, got %d", pe.LineNumber)
	}
	if pe.Line != "1x from http://a.com" {
		t.Errorf("expected offending line, got %q", pe.Line)
	}
}

func TestBuilderResetsStats(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if _, err := b.Build([]string{"http://a.com", "1 from http://a.com", "http://b.com"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build([]string{"http://a.com"}); err != nil {
		t.Fatal(err)
	}
	if b.Stats() != (BuildStats{}) {
		t.Errorf("expected stats of the last build only, got %+v", b.Stats())
	}
}

// crawlFixture is a crawl with several depths, an unmatched tier and an
// interrupted tier.
var crawlFixture = []string{
	"http://site.com",
	"3 from http://site.com",
	"http://site.com/a",
	"http://site.com/b",
	"http://site.com/c",
	"2 from http://site.com/a",
	"http://site.com/a/1",
	"http://site.com/a/2",
	"1 from http://site.com/a/2",
	"http://site.com/a/2/deep",
	"4 from http://site.com/c",
	"http://site.com/c/1",
	"2 from http://elsewhere.com",
	"http://elsewhere.com/x",
}

func TestTableProperties(t *testing.T) {
	t.Parallel()

	t.Run("padding makes the table rectangular", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, crawlFixture)
		if tbl.IsRectangular() {
			t.Fatal("fixture should not start rectangular")
		}
		Pad(tbl)
		if !tbl.IsRectangular() {
			t.Errorf("expected rectangular table, got %q", texts(tbl))
		}
		if tbl.Width() != 4 {
			t.Errorf("expected width 4, got %d", tbl.Width())
		}
	})

	t.Run("padding is idempotent", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, crawlFixture)
		Pad(tbl)
		once := texts(tbl)
		Pad(tbl)
		if twice := texts(tbl); !reflect.DeepEqual(once, twice) {
			t.Errorf("second pad changed the table:\n%q\n%q", once, twice)
		}
	})

	t.Run("tier rows are contiguous and in source order", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, crawlFixture)
		want := [][]string{
			{"http://site.com"},
			{"-", "http://site.com/a"},
			{"-", "-", "http://site.com/a/1"},
			{"-", "-", "http://site.com/a/2"},
			{"-", "-", "-", "http://site.com/a/2/deep"},
			{"-", "http://site.com/b"},
			{"-", "http://site.com/c"},
			{"-", "-", "http://site.com/c/1"},
			{"-", "http://elsewhere.com/x"},
		}
		if got := texts(tbl); !reflect.DeepEqual(got, want) {
			t.Errorf("expected\n%q\ngot\n%q", want, got)
		}
	})

	t.Run("filler prefix is fixed when the row is created", func(t *testing.T) {
		t.Parallel()

		tbl, _ := build(t, crawlFixture)
		for _, row := range tbl.Rows {
			prefix := 0
			for _, c := range row {
				if !c.IsFiller() {
					break
				}
				prefix++
			}
			if prefix != row.FillerCount() {
				t.Errorf("filler cells must only precede the value before padding: %q", row.Texts("-"))
			}
			if prefix != len(row)-1 {
				t.Errorf("row should hold exactly one value: %q", row.Texts("-"))
			}
		}
	})

	t.Run("tier count is conserved unless interrupted", func(t *testing.T) {
		t.Parallel()

		_, stats := build(t, crawlFixture)
		// 3 + 2 + 1 + 1 of 4 + 1 of 2
		if stats.RowsInserted != 8 {
			t.Errorf("expected 8 inserted rows, got %d", stats.RowsInserted)
		}
		if stats.Tiers != 5 {
			t.Errorf("expected 5 tiers, got %d", stats.Tiers)
		}
		if stats.ShortTiers != 2 {
			t.Errorf("expected 2 short tiers, got %d", stats.ShortTiers)
		}
		if stats.UnmatchedTiers != 1 {
			t.Errorf("expected 1 unmatched tier, got %d", stats.UnmatchedTiers)
		}
	})
}
