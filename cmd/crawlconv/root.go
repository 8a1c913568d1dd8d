package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nao1215/crawlconv/internal/config"
	"github.com/nao1215/crawlconv/internal/model"
	"github.com/spf13/cobra"
)

// Exit codes returned by the process.
const (
	exitFailure    = 1
	exitUnreadable = 2
)

// NewRootCmd creates the root command for crawlconv.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawlconv",
		Short: "Convert web crawler output for analysis",
		Long: `crawlconv converts the text output of a web crawler into CSV and other
formats for analysis.

A crawled file starts with the origin URL and lists the URLs found on each
page after a "<count> from <url>" line. crawlconv rebuilds it into a table
with one column per crawl tier. A duplicates or to-crawl file lists one URL
per line and becomes a table of unique links with occurrence counts.

Run without arguments to be asked for the input file, its type and the
output file. Use "crawlconv convert" for scripting and batches.`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: applyGlobalFlags,
		RunE:              runInteractiveCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory of the conversion history (default: "+config.XDGDataDir()+")")

	// Add subcommands
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// applyGlobalFlags applies persistent flags that change process state.
func applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	if getBoolFlag(cmd, "no-color") {
		color.NoColor = true
	}
	return nil
}

// getBoolFlag retrieves a boolean flag from the command or the root's
// persistent flags.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// getDataDir returns the history directory given by --data-dir, or the
// XDG data directory.
func getDataDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		dir, err = cmd.Root().PersistentFlags().GetString("data-dir")
		if err != nil {
			return config.XDGDataDir()
		}
	}
	if dir == "" {
		return config.XDGDataDir()
	}
	return dir
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if errors.Is(err, model.ErrInputUnreadable) {
		return exitUnreadable
	}
	return exitFailure
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
