package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nao1215/crawlconv/internal/config"
	"github.com/nao1215/crawlconv/internal/database"
	"github.com/nao1215/crawlconv/internal/log"
	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/pipeline"
	"github.com/nao1215/crawlconv/internal/report"
	"github.com/spf13/cobra"
)

// NewConvertCmd creates the convert command.
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert crawler output files",
		Long: `Convert reads one or more crawler output files of the same type and
writes each of them in the requested format.

File types:
  crawled (1)  crawl log with "<count> from <url>" tier lines
  links   (2)  duplicates or to-crawl list, one URL per line

Output formats: csv, txt, html, md, json.

Examples:
  # Convert a crawl log to links.csv
  crawlconv convert -t crawled links.txt

  # Count duplicates and write Markdown next to each input
  crawlconv convert -t links -f md duplicates.txt tocrawl.txt

  # Write the table to standard output
  crawlconv convert -t crawled -o - links.txt

  # Convert many logs into one directory, eight at a time
  crawlconv convert -t crawled -d out -b 8 logs/*.txt

Configuration file (.crawlconv) example:
  defaults:
    format: csv
  crawled:
    filler: NA
  links:
    format: md
    output_dir: reports`,
		Args: cobra.ArbitraryArgs,
		RunE: runConvertCmd,
	}

	cmd.Flags().StringP("type", "t", "",
		"Type of the input files: crawled (1) or links (2)")
	cmd.Flags().StringP("format", "f", model.FormatCSV.String(),
		"Output format: csv, txt, html, md or json")
	cmd.Flags().StringP("output", "o", "",
		"Output file for a single input; - writes to standard output")
	cmd.Flags().StringP("output-dir", "d", "",
		"Directory for outputs named after their inputs (default: next to the input)")
	cmd.Flags().Bool("keep-blanks", false,
		"Keep blank lines instead of removing them before conversion")
	cmd.Flags().String("filler", config.DefaultFiller,
		"Text written for empty table cells")
	cmd.Flags().BoolP("pretty", "p", false,
		"Indent JSON output")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of files converted concurrently")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .crawlconv in current or home directory)")
	cmd.Flags().Bool("no-history", false,
		"Do not record the conversions in the history database")

	return cmd
}

// runConvertCmd executes the convert command.
func runConvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := cmd.OutOrStdout()
	if cfg.OutputPath == config.StdoutPath {
		summary = cmd.ErrOrStderr()
	}

	_, err = runConversions(ctx, cfg, cmd.OutOrStdout(), summary, logger)
	return err
}

// buildConfig creates a Config from cobra command flags.
//
// Values from the configuration file for the selected type are applied
// first; flags given on the command line override them.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Inputs = args
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = getDataDir(cmd)

	kind, err := cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}
	if kind != "" {
		cfg.Kind, err = model.ParseFileKind(kind)
		if err != nil {
			return nil, err
		}
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		name, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Format, err = model.ParseFormat(name)
		if err != nil {
			return nil, err
		}
	}
	if flags.Changed("filler") {
		if cfg.Filler, err = flags.GetString("filler"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("keep-blanks") {
		if cfg.KeepBlanks, err = flags.GetBool("keep-blanks"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}

	if cfg.OutputPath, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.PrettyPrint, err = flags.GetBool("pretty"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	return cfg, nil
}

// applyConfigFile applies the settings of the configuration file for
// cfg.Kind. A missing file is only an error when its path was given
// explicitly.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if err := cfg.Apply(file.GetKindSettings(cfg.Kind)); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// runConversions converts every input of cfg and returns the finished jobs
// in input order.
//
// Converted data goes to stdout when the output path is "-", summaries go
// to summaryOut. Every finished conversion is saved to the history when
// cfg.SaveToDB is set. The returned error reports the failed conversions.
func runConversions(
	ctx context.Context,
	cfg *config.Config,
	stdout, summaryOut io.Writer,
	logger *slog.Logger,
) ([]*pipeline.Job, error) {
	db := openHistory(cfg, logger)
	if db != nil {
		defer db.Close()
	}

	jobs := make([]*pipeline.Job, len(cfg.Inputs))
	for i, input := range cfg.Inputs {
		jobs[i] = pipeline.NewJob(input, cfg.OutputFor(input), cfg.Kind, cfg.Format)
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewConversionPipeline(cfg, stdout, logger)
		},
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	summary := report.NewSimpleWriter(summaryOut, report.WithVerbose(cfg.Verbose))
	startTime := time.Now()

	// Summaries are written in completion order.
	var mu sync.Mutex
	err := bp.ProcessBatchWithCallback(ctx, jobs, func(job *pipeline.Job, _ int) {
		mu.Lock()
		defer mu.Unlock()

		if _, err := summary.WriteConversion(job.Conversion); err != nil {
			logger.Error("failed to write summary", "input", job.Conversion.InputPath, "error", err)
		}
		if err := saveConversion(ctx, db, job.Conversion, logger); err != nil {
			logger.Error("failed to save conversion", "input", job.Conversion.InputPath, "error", err)
		}
	})

	logger.Debug("conversions finished",
		"files", len(jobs),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	if err != nil {
		return jobs, err
	}
	return jobs, conversionError(jobs)
}

// openHistory opens the history database, or returns nil when history is
// disabled or cannot be opened. History is never a reason to fail a
// conversion.
func openHistory(cfg *config.Config, logger *slog.Logger) *database.HistoryDB {
	if !cfg.SaveToDB {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("conversion history disabled", "dir", cfg.DBDir, "error", err)
		return nil
	}
	logger.Debug("history database opened", "path", db.Path())
	return db
}

// saveConversion saves c to the history database.
// If db is nil, this function is a no-op.
func saveConversion(ctx context.Context, db *database.HistoryDB, c *model.Conversion, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	// The batch context may already be cancelled; a record of the
	// interrupted run is still wanted.
	if err := db.SaveConversion(context.WithoutCancel(ctx), c); err != nil {
		return fmt.Errorf("failed to save conversion: %w", err)
	}

	logger.Debug("conversion saved to history", "input", c.InputPath, "id", c.ID)
	return nil
}

// conversionError returns nil when every job succeeded, the error of the
// failed job when there is one, and a joined error otherwise.
func conversionError(jobs []*pipeline.Job) error {
	var errs []error
	for _, job := range jobs {
		c := job.Conversion
		if c.Succeeded() {
			continue
		}
		err := c.Error
		if err == nil {
			err = errors.New(c.ErrorMessage)
		}
		errs = append(errs, err)
	}

	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("%d of %d conversions failed: %w", len(errs), len(jobs), errors.Join(errs...))
	}
}
