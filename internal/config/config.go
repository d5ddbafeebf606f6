// =============================================================================
// Profit Calculator - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file.
//
// CONFIGURATION FILE (profitcalc.yaml):
//
//   state_file: ./profit-calculator-state.json
//   export_file_name: profit-calculator-state.json
//   recompute_on_import: true
//   csv_delimiter: ","
//   log_level: info
//   log_format: console
//   log_output: stderr
//   defaults:
//     item_name: New Item
//     quantity: "30"
//     cost: "9.75"
//     discount: "0.02"
//     gst: "0.18"
//     expense: "55"
//     selling_price: "660"
//
// A missing file is not an error: every setting has a default.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "profitcalc.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// StateFile is the document holding the working set between commands.
	// Its extension selects the format (json, yaml, xlsx, csv, xml).
	// Default: "./profit-calculator-state.json"
	StateFile string `yaml:"state_file"`

	// ExportFileName is the suggested file name for exports. Placeholders
	// {timestamp}, {date} and {uuid} are expanded.
	// Default: "profit-calculator-state.json"
	ExportFileName string `yaml:"export_file_name"`

	// RecomputeOnImport re-runs the calculation engine on every imported row.
	// Default: true
	RecomputeOnImport *bool `yaml:"recompute_on_import"`

	// CSVDelimiter is used for csv import and export.
	// Default: ","
	CSVDelimiter string `yaml:"csv_delimiter"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "console" or "json".
	// Default: "console"
	LogFormat string `yaml:"log_format"`

	// LogOutput is "stdout", "stderr" or a file path.
	// Default: "stderr"
	LogOutput string `yaml:"log_output"`

	// =========================================================================
	// ROW DEFAULTS
	// =========================================================================

	// Defaults are the raw values of a row added to an empty sheet.
	Defaults RowDefaults `yaml:"defaults"`
}

// RowDefaults mirrors row.Defaults with YAML keys. Empty values fall back to
// the built-in defaults.
type RowDefaults struct {
	ItemName     string `yaml:"item_name"`
	Quantity     string `yaml:"quantity"`
	Cost         string `yaml:"cost"`
	Discount     string `yaml:"discount"`
	GST          string `yaml:"gst"`
	Expense      string `yaml:"expense"`
	SellingPrice string `yaml:"selling_price"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load reads the configuration from a YAML file. A missing file yields the
// defaults.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file exists but cannot be read or parsed.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.StateFile == "" {
		config.StateFile = "./profit-calculator-state.json"
	}
	if config.ExportFileName == "" {
		config.ExportFileName = "profit-calculator-state.json"
	}
	if config.RecomputeOnImport == nil {
		recompute := true
		config.RecomputeOnImport = &recompute
	}
	if config.CSVDelimiter == "" {
		config.CSVDelimiter = ","
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}
	if config.LogOutput == "" {
		config.LogOutput = "stderr"
	}

	builtin := row.BuiltinDefaults()
	d := &config.Defaults
	fill := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	fill(&d.ItemName, builtin.ItemName)
	fill(&d.Quantity, builtin.Quantity)
	fill(&d.Cost, builtin.Cost)
	fill(&d.Discount, builtin.Discount)
	fill(&d.GST, builtin.GST)
	fill(&d.Expense, builtin.Expense)
	fill(&d.SellingPrice, builtin.SellingPrice)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// RowDefaults converts the configured defaults for the row model.
func (c *Config) RowDefaults() row.Defaults {
	return row.Defaults{
		ItemName:     c.Defaults.ItemName,
		Quantity:     c.Defaults.Quantity,
		Cost:         c.Defaults.Cost,
		Discount:     c.Defaults.Discount,
		GST:          c.Defaults.GST,
		Expense:      c.Defaults.Expense,
		SellingPrice: c.Defaults.SellingPrice,
	}
}

// ShouldRecomputeOnImport reports whether imported rows are recomputed.
func (c *Config) ShouldRecomputeOnImport() bool {
	return c.RecomputeOnImport == nil || *c.RecomputeOnImport
}
