package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/crawlconv/internal/crawllog"
	"github.com/nao1215/crawlconv/internal/database"
	"github.com/nao1215/crawlconv/internal/model"
)

// seedHistory saves conversions in a new history database under dir.
func seedHistory(t *testing.T, dir string, convs ...*model.Conversion) {
	t.Helper()
	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	for _, c := range convs {
		if err := db.SaveConversion(context.Background(), c); err != nil {
			t.Fatalf("failed to save conversion: %v", err)
		}
	}
}

func testConversion(input string, startedAt time.Time) *model.Conversion {
	c := model.NewConversion(input, model.FileKindCrawled, model.FormatCSV)
	c.OutputPath = strings.TrimSuffix(input, ".txt") + ".csv"
	c.StartedAt = startedAt
	c.LinesRead = 4
	c.Rows = 3
	c.Columns = 2
	c.Tiers = 1
	c.PerformedSteps = []string{"read", "clean", "build", "pad", "emit"}
	return c
}

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()
	if cmd.Use != "history" {
		t.Errorf("expected use 'history', got %q", cmd.Use)
	}
	for _, name := range []string{"limit", "json", "id", "input"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if got := cmd.Flags().Lookup("limit").DefValue; got != "20" {
		t.Errorf("expected default limit 20, got %q", got)
	}
}

func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("reports an empty history without creating a database", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		stdout, _, err := runRoot(t, "", "history", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stdout != "No conversions recorded.\n" {
			t.Errorf("unexpected output %q", stdout)
		}
		if matches, _ := filepath.Glob(filepath.Join(dir, "*.db")); len(matches) != 0 {
			t.Errorf("expected no database file, got %v", matches)
		}
	})

	t.Run("empty history as JSON is an empty array", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runRoot(t, "", "history", "--json", "--data-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(stdout) != "[]" {
			t.Errorf("expected [], got %q", stdout)
		}
	})

	t.Run("lists conversions newest first", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		now := time.Now()
		seedHistory(t, dir,
			testConversion("old.txt", now.Add(-time.Hour)),
			testConversion("new.txt", now),
		)

		stdout, _, err := runRoot(t, "", "history", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		oldAt := strings.Index(stdout, "old.txt")
		newAt := strings.Index(stdout, "new.txt")
		if oldAt < 0 || newAt < 0 || newAt > oldAt {
			t.Errorf("expected new.txt listed before old.txt, got %q", stdout)
		}
	})

	t.Run("limit restricts the listing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		now := time.Now()
		seedHistory(t, dir,
			testConversion("old.txt", now.Add(-time.Hour)),
			testConversion("new.txt", now),
		)

		stdout, _, err := runRoot(t, "", "history", "-n", "1", "--json", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []model.Conversion
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got) != 1 || got[0].InputPath != "new.txt" {
			t.Errorf("expected only new.txt, got %+v", got)
		}
	})

	t.Run("id shows one conversion in detail", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir, testConversion("links.txt", time.Now()))

		stdout, _, err := runRoot(t, "", "history", "--id", "1", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"links.txt (crawled) -> links.csv", "Rows written:        3", "Steps:"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got %q", want, stdout)
			}
		}
	})

	t.Run("unknown id is an error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		seedHistory(t, dir, testConversion("links.txt", time.Now()))

		_, _, err := runRoot(t, "", "history", "--id", "42", "--data-dir", dir)
		if !errors.Is(err, ErrConversionNotFound) {
			t.Errorf("expected ErrConversionNotFound, got %v", err)
		}
	})

	t.Run("input lists conversions of the same content", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeFile(t, dir, "links.txt", crawlLog)
		in, err := crawllog.ReadFile(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		now := time.Now()
		same := testConversion("copy.txt", now.Add(-time.Hour))
		same.InputHash = in.Digest
		renamed := testConversion("renamed.txt", now)
		renamed.InputHash = in.Digest
		other := testConversion("other.txt", now)
		other.InputHash = strings.Repeat("0", 64)
		seedHistory(t, dir, same, renamed, other)

		stdout, _, err := runRoot(t, "", "history", "--input", input, "--json", "--data-dir", dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got []model.Conversion
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got) != 2 || got[0].InputPath != "renamed.txt" || got[1].InputPath != "copy.txt" {
			t.Errorf("expected renamed.txt and copy.txt, got %+v", got)
		}
	})

	t.Run("input that cannot be read exits with code 2", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		_, _, err := runRoot(t, "", "history", "--input", filepath.Join(dir, "missing.txt"), "--data-dir", dir)
		if !errors.Is(err, model.ErrInputUnreadable) {
			t.Fatalf("expected ErrInputUnreadable, got %v", err)
		}
		if exitCode(err) != exitUnreadable {
			t.Errorf("expected exit code %d, got %d", exitUnreadable, exitCode(err))
		}
	})
}
