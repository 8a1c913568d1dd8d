package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/nao1215/crawlconv/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "crawlconv"

	// DefaultFiller is the text of empty table cells expected by the analyzer.
	DefaultFiller = "NA"

	// DefaultBatchSize is the number of files converted at the same time.
	DefaultBatchSize = 4

	// StdoutPath as an output path writes to standard output.
	StdoutPath = "-"
)

// Config holds all configuration options for one crawlconv run.
// It is populated from the config file and CLI flags and passed through
// the application rather than kept in global state.
type Config struct {
	// Inputs are the crawler output files to convert.
	Inputs []string

	// Kind is the kind of every input file.
	Kind model.FileKind

	// Format is the output format.
	Format model.Format

	// OutputPath is the output file for a single input. StdoutPath writes
	// to standard output. When empty the name is derived from the input.
	OutputPath string

	// OutputDir is the directory derived output names are placed in.
	// When empty, outputs are written next to their inputs.
	OutputDir string

	// KeepBlanks disables blank line removal before conversion.
	KeepBlanks bool

	// Filler is the text written for empty table cells.
	Filler string

	// PrettyPrint indents JSON output.
	PrettyPrint bool

	// BatchSize is the number of concurrent conversions when several inputs
	// are given.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .crawlconv in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DBDir is the directory holding the conversion history database.
	// Defaults to XDG data directory (~/.local/share/crawlconv on Linux).
	DBDir string

	// SaveToDB records each conversion in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Format:    model.FormatCSV,
		Filler:    DefaultFiller,
		BatchSize: DefaultBatchSize,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
	}
}

// XDGDataDir returns the XDG data directory for crawlconv.
// On Linux: ~/.local/share/crawlconv
// On macOS: ~/Library/Application Support/crawlconv
// On Windows: %LOCALAPPDATA%\crawlconv
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first rule that is violated.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if c.Kind != model.FileKindCrawled && c.Kind != model.FileKindLinks {
		return ErrNoFileKind
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.OutputPath != "" && len(c.Inputs) > 1 {
		return ErrOutputWithMultipleInputs
	}

	if strings.ContainsAny(c.Filler, ",\r\n") {
		return ErrInvalidFiller
	}

	return c.checkOutputs()
}

// checkOutputs reports two inputs whose conversions share an output file.
func (c *Config) checkOutputs() error {
	seen := make(map[string]string, len(c.Inputs))
	for _, input := range c.Inputs {
		out := filepath.Clean(c.OutputFor(input))
		if prev, ok := seen[out]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrDuplicateOutput, prev, input, out)
		}
		seen[out] = input
	}
	return nil
}

// Apply overrides c with every value set in s.
func (c *Config) Apply(s KindSettings) error {
	if s.Format != "" {
		format, err := model.ParseFormat(s.Format)
		if err != nil {
			return err
		}
		c.Format = format
	}
	if s.Filler != nil {
		c.Filler = *s.Filler
	}
	if s.KeepBlanks != nil {
		c.KeepBlanks = *s.KeepBlanks
	}
	if s.OutputDir != "" {
		c.OutputDir = s.OutputDir
	}
	return nil
}

// OutputFor returns where the conversion of input is written.
//
// An explicit OutputPath wins. Otherwise the input base name gets the
// extension of the output format and is placed in OutputDir, or next to
// the input. A derived name that would overwrite the input gets a
// ".converted" suffix before the extension.
func (c *Config) OutputFor(input string) string {
	if c.OutputPath != "" {
		return c.OutputPath
	}

	dir := c.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	out := filepath.Join(dir, base+c.Format.Extension())
	if filepath.Clean(out) == filepath.Clean(input) {
		out = filepath.Join(dir, base+".converted"+c.Format.Extension())
	}
	return out
}
