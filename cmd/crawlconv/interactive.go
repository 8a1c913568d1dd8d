package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/crawlconv/internal/config"
	"github.com/nao1215/crawlconv/internal/crawllog"
	"github.com/nao1215/crawlconv/internal/log"
	"github.com/nao1215/crawlconv/internal/model"
	"github.com/nao1215/crawlconv/internal/prompt"
	"github.com/spf13/cobra"
)

// runInteractiveCmd asks for one conversion on the terminal and runs it.
func runInteractiveCmd(cmd *cobra.Command, _ []string) error {
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	p.Println("Converter program for Web Crawler output data.")
	p.Println("You will be asked for an input file generated by the web crawler (typically links.txt)")
	p.Println("and for the type of that file.")
	p.Println("Blank lines of a crawled file can be removed before conversion.")
	p.Println()

	input, err := p.AskRequired("Enter name of input file")
	if err != nil {
		return err
	}
	if err := crawllog.CheckReadable(input); err != nil {
		p.Warn("Could not open file")
		return err
	}

	kinds := model.FileKinds()
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = k.Description()
	}
	choice, err := p.Choose("Which file is this?", labels)
	if errors.Is(err, prompt.ErrNotAChoice) {
		p.Println("Not a choice.")
		return nil
	}
	if err != nil {
		return err
	}

	cfg := config.NewConfig()
	cfg.Inputs = []string{input}
	cfg.Kind = kinds[choice-1]
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.DBDir = getDataDir(cmd)
	cfg.BatchSize = 1
	if err := applyConfigFile(cfg); err != nil {
		return err
	}

	if cfg.Kind == model.FileKindCrawled {
		remove, err := p.Confirm("Remove blank lines before conversion?", !cfg.KeepBlanks)
		if err != nil {
			return err
		}
		cfg.KeepBlanks = !remove
	} else {
		p.Info("Converting to %s file with occurrence counters.", cfg.Format.Extension())
	}

	cfg.OutputPath, err = p.AskDefault("Enter name of output file", cfg.OutputFor(input))
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := cmd.OutOrStdout()
	if cfg.OutputPath == config.StdoutPath {
		summary = cmd.ErrOrStderr()
	}

	if _, err := runConversions(ctx, cfg, cmd.OutOrStdout(), summary, logger); err != nil {
		return err
	}
	p.Success("Write successful.")
	return nil
}
