package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/crawlconv/internal/model"
)

func TestRunInteractiveCmd(t *testing.T) {
	t.Parallel()

	t.Run("converts a crawled file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeFile(t, dir, "links.txt", "http://a.com\n\n2 from http://a.com\nhttp://b.com\n\nhttp://c.com\n")
		output := filepath.Join(dir, "table.csv")

		answers := strings.Join([]string{input, "1", "", output}, "\n") + "\n"
		stdout, _, err := runRoot(t, answers, "--data-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("expected output file: %v", err)
		}
		if string(got) != crawlCSV {
			t.Errorf("expected %q, got %q", crawlCSV, got)
		}
		for _, want := range []string{
			"Enter name of input file: ",
			"1. Crawled file",
			"2. Duplicates/Tocrawl file",
			"Remove blank lines before conversion?",
			"Blank lines removed: 2",
			"Write successful.",
		} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected %q in output, got %q", want, stdout)
			}
		}
	})

	t.Run("links file is written to the suggested name", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeFile(t, dir, "tocrawl.txt", linkList)

		stdout, _, err := runRoot(t, input+"\n2\n\n", "--data-dir", t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "occurrence counters") {
			t.Errorf("expected occurrence notice, got %q", stdout)
		}

		got, err := os.ReadFile(filepath.Join(dir, "tocrawl.csv"))
		if err != nil {
			t.Fatalf("expected output file: %v", err)
		}
		if string(got) != linkCSV {
			t.Errorf("expected %q, got %q", linkCSV, got)
		}
	})

	t.Run("invalid menu choice ends without converting", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := writeFile(t, dir, "links.txt", crawlLog)

		stdout, _, err := runRoot(t, input+"\n3\n", "--data-dir", t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(stdout, "Not a choice.") {
			t.Errorf("expected 'Not a choice.', got %q", stdout)
		}
		if _, err := os.Stat(filepath.Join(dir, "links.csv")); !errors.Is(err, os.ErrNotExist) {
			t.Error("expected no output file")
		}
	})

	t.Run("unreadable input file exits with code 2", func(t *testing.T) {
		t.Parallel()
		missing := filepath.Join(t.TempDir(), "missing.txt")

		stdout, _, err := runRoot(t, missing+"\n", "--data-dir", t.TempDir())
		if !errors.Is(err, model.ErrInputUnreadable) {
			t.Fatalf("expected ErrInputUnreadable, got %v", err)
		}
		if exitCode(err) != exitUnreadable {
			t.Errorf("expected exit code %d, got %d", exitUnreadable, exitCode(err))
		}
		if !strings.Contains(stdout, "Could not open file") {
			t.Errorf("expected 'Could not open file', got %q", stdout)
		}
	})

	t.Run("unexpected arguments are rejected", func(t *testing.T) {
		t.Parallel()
		if _, _, err := runRoot(t, "", "links.txt"); err == nil {
			t.Error("expected error for unknown command")
		}
	})
}
