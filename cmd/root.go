// =============================================================================
// Profit Calculator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (profitcalc)
//   ├── initCmd    (profitcalc init)
//   ├── addCmd     (profitcalc add)
//   ├── setCmd     (profitcalc set)
//   ├── deleteCmd  (profitcalc delete)
//   ├── listCmd    (profitcalc list)
//   ├── totalCmd   (profitcalc total)
//   ├── exportCmd  (profitcalc export)
//   ├── importCmd  (profitcalc import)
//   └── versionCmd (profitcalc version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the YAML configuration (--config)
//   2. Resolves the state file (--state, else the configured one)
//   3. Builds the zap logger (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/profit-calculator/internal/config"
	"github.com/ginjaninja78/profit-calculator/internal/logging"
	"github.com/ginjaninja78/profit-calculator/internal/session"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// stateFile overrides the configured state file.
var stateFile string

// verbose enables debug logging when set to true.
var verbose bool

// appConfig and logger are set up by initApp before a subcommand runs.
var (
	appConfig *config.Config
	logger    = zap.NewNop()
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "profitcalc",
	Short: "Profit Calculator - price items and track profit per row",
	Long: `Profit Calculator keeps a sheet of priced items. For every row it derives
the effective cost, GST-inclusive cost, final cost, selling price without GST,
price per metre and profit, and it totals the profit across the sheet.

The sheet lives in a state file (JSON by default; YAML, XLSX, CSV and XML
are picked by extension) that every command reads and writes back.

Example Usage:
  profitcalc init                                # Start a sheet with one default row
  profitcalc add --name "Copper wire" --cost 12  # Add a row
  profitcalc set <id> quantity 45                # Edit a raw field
  profitcalc list -s                             # Show rows by profit, highest first
  profitcalc export --out sheet.xlsx             # Export to a workbook`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().StringVar(
		&stateFile,
		"state",
		"",
		"Path to the state file (default from configuration)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initApp loads the configuration and builds the logger.
func initApp() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg

	if stateFile == "" {
		stateFile = cfg.StateFile
	}

	l, err := logging.New(loggingConfig(cfg, verbose))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	logger.Debug("configuration loaded",
		zap.String("config", cfgFile),
		zap.String("state", stateFile),
	)
	return nil
}

// loggingConfig starts from the logging defaults and applies the configured
// settings; --verbose forces debug level.
func loggingConfig(cfg *config.Config, verbose bool) logging.Config {
	logCfg := logging.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	if cfg.LogOutput != "" {
		logCfg.Output = cfg.LogOutput
	}
	if verbose {
		logCfg.Level = "debug"
	}
	return logCfg
}

// openSession loads the state file for a command.
func openSession() (*session.Session, error) {
	return session.Open(stateFile, appConfig, logger)
}
