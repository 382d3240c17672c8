package cmd

import (
	"fmt"
	"os"

	"rank-tracker/core/config"
	"rank-tracker/core/logger"
	"rank-tracker/core/storage"
	"rank-tracker/feature/tracker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configPath is where .env and ranktracker.yaml are looked up.
var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "rank-tracker",
	Short: "Rocket League rank history tracker",
	Long: `Rank Tracker reads the game client logs, extracts the rank points of every
ranked match and keeps one CSV history per playlist. Repeated scans only add
what is new.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We use "debug" level configuration to get ISO8601 timestamps (DevConfig) instead of Epoch (ProdConfig)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "Folder holding .env and ranktracker.yaml")
}

// setup loads the configuration, applies overrides and builds the service.
func setup(override func(cfg *config.Config)) (*tracker.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if override != nil {
		override(cfg)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return tracker.NewService(cfg.Storage, cfg.Tracker, cfg.Metrics, storage.Local{}, l), l, nil
}
