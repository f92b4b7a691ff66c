package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gopipeline/internal/config"
	"github.com/dbsmedya/gopipeline/internal/logger"
	"github.com/dbsmedya/gopipeline/internal/pipeline"
	"github.com/dbsmedya/gopipeline/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the complete pipeline once",
	Long: `Run executes the five pipeline stages in sequence and prints a
human-readable summary. A failed run is reported in the summary and
the process still exits 0; check the printed status rather than the
exit code.

Example:
  gopipeline run
  gopipeline run --config gopipeline.yaml --warehouse data/warehouse.db`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	// Load configuration; missing file falls back to defaults
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply CLI overrides
	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.WarehousePath, overrides.ReportPath)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	outcome := p.Run(cmd.Context())

	// The artifact is only written for a completed run; a failure is
	// surfaced through the printed summary.
	if outcome.Succeeded() {
		if err := report.WriteArtifact(cfg.Report.Path, outcome.Report()); err != nil {
			log.Errorw("Failed to write report artifact", "error", err)
		}
	}

	report.PrintSummary(os.Stdout, outcome)
	return nil
}
