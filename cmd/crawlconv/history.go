package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/crawlconv/internal/crawllog"
	"github.com/nao1215/crawlconv/internal/database"
	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of conversions listed by default.
const defaultHistoryLimit = 20

// ErrConversionNotFound is returned when --id names no saved conversion.
var ErrConversionNotFound = errors.New("conversion not found")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past conversions",
		Long: `History lists the conversions recorded by "crawlconv convert" and the
interactive mode, newest first.

Examples:
  # Show the last 20 conversions
  crawlconv history

  # Show every recorded conversion
  crawlconv history -n 0

  # Show one conversion in detail
  crawlconv history --id 12

  # List earlier conversions of a file with the same content
  crawlconv history --input links.txt

  # Export the history as JSON
  crawlconv history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of conversions to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON")
	cmd.Flags().Int64("id", 0,
		"Show the conversion with this ID")
	cmd.Flags().StringP("input", "i", "",
		"List conversions of files with the same content as this file")
	cmd.MarkFlagsMutuallyExclusive("id", "input")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	inputPath, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}

	var digest string
	if inputPath != "" {
		in, err := crawllog.ReadFile(inputPath)
		if err != nil {
			return err
		}
		digest = in.Digest
	}

	dbDir := getDataDir(cmd)
	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); errors.Is(err, os.ErrNotExist) {
		if id > 0 {
			return fmt.Errorf("%w: %d", ErrConversionNotFound, id)
		}
		return writeHistory(cmd, nil, jsonOutput)
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if id > 0 {
		c, err := db.GetConversionByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: %d", ErrConversionNotFound, id)
		}
		if jsonOutput {
			return writeJSON(cmd, c)
		}
		_, err = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(true)).WriteConversion(c)
		return err
	}

	var conversions []*model.Conversion
	if digest != "" {
		conversions, err = db.FindByInputHash(ctx, digest)
		if err == nil && limit > 0 && len(conversions) > limit {
			conversions = conversions[:limit]
		}
	} else {
		conversions, err = db.ListConversions(ctx, limit)
	}
	if err != nil {
		return err
	}
	return writeHistory(cmd, conversions, jsonOutput)
}

// writeHistory writes the listing as a table or a JSON array.
func writeHistory(cmd *cobra.Command, conversions []*model.Conversion, jsonOutput bool) error {
	if jsonOutput {
		if conversions == nil {
			conversions = []*model.Conversion{}
		}
		return writeJSON(cmd, conversions)
	}
	_, err := report.NewSimpleWriter(cmd.OutOrStdout()).WriteHistory(conversions)
	return err
}

// writeJSON writes v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
