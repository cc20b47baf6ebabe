// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/cv-builder/internal/types"
)

// Log modes accepted by LogMode
const (
	LogModeDevelopment = "development"
	LogModeProduction  = "production"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input          string `json:"input,omitempty"`           // CV record file (.json, .yaml, .yml)
	Output         string `json:"output,omitempty"`          // Output .tex file
	OutputDir      string `json:"output_dir,omitempty"`      // Output directory for --all-templates
	Template       string `json:"template,omitempty"`        // Layout identifier (classic, banking, europass)
	CustomTemplate string `json:"custom_template,omitempty"` // Path to a text/template LaTeX file

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Checks
	MaxChars int  `json:"max_chars,omitempty"` // Maximum content characters per line
	Strict   bool `json:"strict,omitempty"`    // Fail on structural errors or missing core fields

	// Behavior
	StripMarkup bool   `json:"strip_markup,omitempty"` // Remove pasted HTML from text fields
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	LogMode     string `json:"log_mode,omitempty"`     // development or production
	Port        int    `json:"port,omitempty"`         // HTTP port for serve
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Output != "" && c.OutputDir != "" {
		return fmt.Errorf("config error: 'output' and 'output_dir' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.MaxChars < 0 {
		return fmt.Errorf("config error: 'max_chars' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Template != "" {
		if _, ok := types.ParseTemplateID(c.Template); !ok {
			return fmt.Errorf("config error: unknown template %q", c.Template)
		}
	}

	switch c.LogMode {
	case "", LogModeDevelopment, LogModeProduction:
	default:
		return fmt.Errorf("config error: 'log_mode' must be %q or %q", LogModeDevelopment, LogModeProduction)
	}

	// Validate file paths exist (if specified)
	if c.CustomTemplate != "" {
		if _, err := os.Stat(c.CustomTemplate); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.CustomTemplate)
		}
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.CustomTemplate == "" {
		result.CustomTemplate = defaults.CustomTemplate
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}

	// Int fields: use default if zero
	if result.MaxChars == 0 {
		result.MaxChars = defaults.MaxChars
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
