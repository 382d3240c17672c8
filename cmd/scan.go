package cmd

import (
	"context"
	"fmt"

	"rank-tracker/core/config"
	"rank-tracker/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	// Flags for scan command
	scanBase            string
	scanLogs            string
	scanDryRun          bool
	scanIncludeUnranked bool
	scanSchema          string
)

// scanCmd merges new log files into the CSV history.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Parse new log files and update the CSV history",
	Long: `Scan the game client log folder, parse every log not scanned before plus
the live Launch.log, merge the results with the existing CSV files and
rewrite one file per playlist.

Examples:
  # Scan with the configured folders
  scan

  # Preview what a scan would add
  scan --dry-run

  # Keep the history somewhere else and track casual matches too
  scan --base ~/ranks --include-unranked`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanBase, "base", "", "Folder holding the ledger and the csv folder")
	scanCmd.Flags().StringVar(&scanLogs, "logs", "", "Game client log folder")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "Report what would change without writing")
	scanCmd.Flags().BoolVar(&scanIncludeUnranked, "include-unranked", false, "Also track unranked matches")
	scanCmd.Flags().StringVar(&scanSchema, "schema", "", "CSV layout: legacy or extended")

	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	svc, l, err := setup(func(cfg *config.Config) {
		if flags.Changed("base") {
			cfg.Storage.BaseDir = scanBase
		}
		if flags.Changed("logs") {
			cfg.Storage.LogDir = scanLogs
		}
		if flags.Changed("include-unranked") {
			cfg.Tracker.IncludeUnranked = scanIncludeUnranked
		}
		if flags.Changed("schema") {
			cfg.Tracker.Schema = scanSchema
		}
	})
	if err != nil {
		return err
	}
	defer l.Sync()

	// Scans are not cancellable.
	summary, err := svc.Scan(context.Background(), reconcile.Options{DryRun: scanDryRun})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}
