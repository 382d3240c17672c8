// Package config provides configuration management for the rank tracker.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional ranktracker.yaml and a .env file. Command-line flags are
// applied on top by the cmd package.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: Logging level and format
//   - Storage: base, output and log folders, ledger and snapshot file names
//   - Tracker: unranked tracking, snapshot schema, time zone
//   - Metrics: optional node-exporter textfile
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.BaseDir)
package config
