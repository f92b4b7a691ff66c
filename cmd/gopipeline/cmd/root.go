package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile       string
	logLevel      string
	logFormat     string
	warehousePath string
	reportPath    string
)

var rootCmd = &cobra.Command{
	Use:   "gopipeline",
	Short: "Synthetic ETL pipeline with data-quality gate",
	Long: `A demonstration ETL pipeline that generates synthetic tabular
datasets, applies derived-column transformations, loads the results
into a local relational warehouse, and scores the data quality.

Stages:
  1. Extract   - generate four synthetic source tables
  2. Transform - add category bins, scores, and flags
  3. Load      - replace warehouse tables plus summary statistics
  4. Check     - run the heuristic quality checks
  5. Report    - write the JSON run report`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag; the file is optional and defaults apply when absent
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gopipeline.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Output overrides
	rootCmd.PersistentFlags().StringVar(&warehousePath, "warehouse", "",
		"Override warehouse sqlite file path")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "",
		"Override JSON report file path")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel      string
	LogFormat     string
	WarehousePath string
	ReportPath    string
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:      logLevel,
		LogFormat:     logFormat,
		WarehousePath: warehousePath,
		ReportPath:    reportPath,
	}
}
