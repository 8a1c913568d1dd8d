package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nao1215/crawlconv/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".crawlconv"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// KindSettings are the conversion defaults for one kind of crawler output.
// Pointer fields distinguish "not set" from the zero value.
type KindSettings struct {
	// Format is the output format name (csv, txt, html, md, json).
	Format string `yaml:"format,omitempty"`

	// Filler is the text written for empty table cells.
	Filler *string `yaml:"filler,omitempty"`

	// KeepBlanks disables blank line removal.
	KeepBlanks *bool `yaml:"keep_blanks,omitempty"`

	// OutputDir is the directory derived output names are placed in.
	OutputDir string `yaml:"output_dir,omitempty"`
}

// File represents the structure of the .crawlconv configuration file.
type File struct {
	// Defaults apply to every kind unless overridden below.
	Defaults KindSettings `yaml:"defaults,omitempty"`

	// Crawled overrides Defaults for crawled files.
	Crawled KindSettings `yaml:"crawled,omitempty"`

	// Links overrides Defaults for duplicates and to-crawl files.
	Links KindSettings `yaml:"links,omitempty"`
}

// GetKindSettings returns the settings for kind, merged over Defaults.
func (f *File) GetKindSettings(kind model.FileKind) KindSettings {
	result := f.Defaults

	var override KindSettings
	switch kind {
	case model.FileKindCrawled:
		override = f.Crawled
	case model.FileKindLinks:
		override = f.Links
	default:
		return result
	}

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Filler != nil {
		result.Filler = override.Filler
	}
	if override.KeepBlanks != nil {
		result.KeepBlanks = override.KeepBlanks
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}

	return result
}

// LoadConfigFile loads conversion settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .crawlconv in the current directory
// 3. Look for .crawlconv in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
