package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/crawlconv/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "crawlconv.db"

// timeLayout stores timestamps with a fixed width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// HistoryDB stores finished conversions in SQLite.
// It is safe for concurrent use; writes are serialized on one connection.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_path TEXT NOT NULL,
		input_hash TEXT,
		kind TEXT NOT NULL,
		format TEXT NOT NULL,
		output_path TEXT,
		lines_read INTEGER DEFAULT 0,
		blanks_removed INTEGER DEFAULT 0,
		row_count INTEGER DEFAULT 0,
		column_count INTEGER DEFAULT 0,
		tiers INTEGER DEFAULT 0,
		unmatched_tiers INTEGER DEFAULT 0,
		bytes_written INTEGER DEFAULT 0,
		started_at TEXT NOT NULL,
		duration_ns INTEGER DEFAULT 0,
		steps TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_hash ON conversions(input_hash);
	CREATE INDEX IF NOT EXISTS idx_conversions_started ON conversions(started_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// conversionColumns lists the columns read by every query, in scan order.
const conversionColumns = `id, input_path, input_hash, kind, format, output_path,
	lines_read, blanks_removed, row_count, column_count, tiers, unmatched_tiers,
	bytes_written, started_at, duration_ns, steps, error`

// SaveConversion inserts c and sets c.ID.
func (hdb *HistoryDB) SaveConversion(ctx context.Context, c *model.Conversion) error {
	steps, err := json.Marshal(c.PerformedSteps)
	if err != nil {
		return fmt.Errorf("failed to serialize steps: %w", err)
	}

	query := `
	INSERT INTO conversions (input_path, input_hash, kind, format, output_path,
		lines_read, blanks_removed, row_count, column_count, tiers, unmatched_tiers,
		bytes_written, started_at, duration_ns, steps, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		c.InputPath,
		c.InputHash,
		c.KindName,
		c.FormatName,
		c.OutputPath,
		c.LinesRead,
		c.BlanksRemoved,
		c.Rows,
		c.Columns,
		c.Tiers,
		c.UnmatchedTiers,
		c.BytesWritten,
		c.StartedAt.UTC().Format(timeLayout),
		int64(c.Duration),
		string(steps),
		c.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save conversion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get conversion id: %w", err)
	}
	c.ID = id

	return nil
}

// ListConversions returns the most recent conversions, newest first.
// A limit of zero or less returns every conversion.
func (hdb *HistoryDB) ListConversions(ctx context.Context, limit int) ([]*model.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return hdb.queryConversions(ctx, query, args...)
}

// FindByInputHash returns every conversion of inputs with the given
// fingerprint, newest first.
func (hdb *HistoryDB) FindByInputHash(ctx context.Context, hash string) ([]*model.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions
	WHERE input_hash = ?
	ORDER BY started_at DESC, id DESC`

	return hdb.queryConversions(ctx, query, hash)
}

// GetConversionByID returns the conversion with id, or nil when there is none.
func (hdb *HistoryDB) GetConversionByID(ctx context.Context, id int64) (*model.Conversion, error) {
	query := `SELECT ` + conversionColumns + ` FROM conversions WHERE id = ?`

	c, err := scanConversion(hdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversion: %w", err)
	}
	return c, nil
}

// queryConversions runs a query selecting conversionColumns.
func (hdb *HistoryDB) queryConversions(ctx context.Context, query string, args ...any) ([]*model.Conversion, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	var results []*model.Conversion
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		results = append(results, c)
	}

	return results, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanConversion reads one row of conversionColumns.
func scanConversion(s scanner) (*model.Conversion, error) {
	var (
		c          model.Conversion
		inputHash  sql.NullString
		outputPath sql.NullString
		startedAt  string
		durationNS int64
		steps      sql.NullString
		errMsg     sql.NullString
	)

	err := s.Scan(
		&c.ID,
		&c.InputPath,
		&inputHash,
		&c.KindName,
		&c.FormatName,
		&outputPath,
		&c.LinesRead,
		&c.BlanksRemoved,
		&c.Rows,
		&c.Columns,
		&c.Tiers,
		&c.UnmatchedTiers,
		&c.BytesWritten,
		&startedAt,
		&durationNS,
		&steps,
		&errMsg,
	)
	if err != nil {
		return nil, err
	}

	c.InputHash = inputHash.String
	c.OutputPath = outputPath.String
	c.StartedAt = parseTimestamp(startedAt)
	c.Duration = time.Duration(durationNS)
	c.ErrorMessage = errMsg.String
	c.Kind, _ = model.ParseFileKind(c.KindName) //nolint:errcheck // Unknown names stay FileKindUnknown
	c.Format, _ = model.ParseFormat(c.FormatName) //nolint:errcheck // Unknown names fall back to csv

	if steps.Valid && steps.String != "" {
		if err := json.Unmarshal([]byte(steps.String), &c.PerformedSteps); err != nil {
			return nil, fmt.Errorf("failed to parse steps: %w", err)
		}
	}

	return &c, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // timeLayout, written by SaveConversion
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
