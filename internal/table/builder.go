package table

import (
	"errors"
	"log/slog"

	"github.com/nao1215/crawlconv/internal/crawllog"
)

// BuildStats counts what a Builder saw during its last Build.
type BuildStats struct {
	// Tiers is the number of tier markers processed.
	Tiers int

	// UnmatchedTiers is the number of tier markers whose referenced URL was
	// not found; their rows were appended at the end of the table.
	UnmatchedTiers int

	// ShortTiers is the number of tiers that received fewer data lines than
	// declared, either because another marker interrupted them or because
	// the input ended.
	ShortTiers int

	// RowsInserted is the number of rows created from data lines.
	RowsInserted int

	// IgnoredLines is the number of data lines that belonged to no tier.
	IgnoredLines int

	// BlankLines is the number of blank lines skipped.
	BlankLines int
}

// tierContext is the state of the tier currently receiving data lines.
type tierContext struct {
	// remaining is the number of data lines the tier may still take.
	remaining int

	// insertPosition is the row index the next row goes to, or -1 to append.
	insertPosition int

	// fillerCount is the number of filler cells in front of each new row.
	fillerCount int
}

// Builder turns crawl log lines into a Table.
// A Builder is not safe for concurrent use; create one per conversion.
type Builder struct {
	logger *slog.Logger
	stats  BuildStats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used to report unmatched and short tiers.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}

	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Stats returns the counters of the last Build.
func (b *Builder) Stats() BuildStats {
	return b.stats
}

// Build walks lines once and returns the unpadded table.
//
// The first line becomes the origin row. A tier marker replaces the active
// tier, dropping whatever count the previous one had left. Each data line
// that arrives while the active tier still has count left becomes a row of
// filler cells followed by the URL, placed after the previous row of the
// same tier. Data lines outside a tier and blank lines are skipped.
//
// A tier marker whose count is not a number aborts the build with a
// *crawllog.ParseError that carries the 1-based line number.
func (b *Builder) Build(lines []string) (*Table, error) {
	b.stats = BuildStats{}
	t := New()

	var tier *tierContext
	for i, line := range lines {
		if i == 0 {
			t.Append(Row{Value(line)})
			continue
		}

		switch crawllog.Classify(line) {
		case crawllog.KindBlank:
			b.stats.BlankLines++

		case crawllog.KindTierMarker:
			marker, err := crawllog.ParseTierMarker(line)
			if err != nil {
				var pe *crawllog.ParseError
				if errors.As(err, &pe) {
					pe.LineNumber = i + 1
				}
				return nil, err
			}

			b.closeTier(tier)
			tier = b.openTier(t, marker, i+1)

		case crawllog.KindData:
			if tier == nil || tier.remaining == 0 {
				b.stats.IgnoredLines++
				continue
			}

			row := tierRow(tier.fillerCount, line)
			if tier.insertPosition == -1 {
				t.Append(row)
			} else {
				t.Insert(tier.insertPosition, row)
				tier.insertPosition++
			}
			tier.remaining--
			b.stats.RowsInserted++
		}
	}
	b.closeTier(tier)

	return t, nil
}

// openTier resolves marker against the table built so far.
func (b *Builder) openTier(t *Table, marker crawllog.TierMarker, lineNumber int) *tierContext {
	b.stats.Tiers++

	pos, fillers := Resolve(t, marker.ReferencedURL)
	if pos == -1 {
		b.stats.UnmatchedTiers++
		b.logger.Debug("tier reference not found, appending rows",
			"line", lineNumber,
			"url", marker.ReferencedURL,
			"count", marker.DeclaredCount,
		)
	}

	return &tierContext{
		remaining:      marker.DeclaredCount,
		insertPosition: pos,
		fillerCount:    fillers,
	}
}

// closeTier records a tier that ends with count left over.
func (b *Builder) closeTier(tier *tierContext) {
	if tier == nil || tier.remaining == 0 {
		return
	}
	b.stats.ShortTiers++
	b.logger.Debug("tier ended before its declared count",
		"missing", tier.remaining,
	)
}
