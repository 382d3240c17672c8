// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a development mode
// (debug level) and a production mode for everything else.
//
// # Scan Correlation
//
// Every scan gets its own identifier. WithScanID attaches it to a child
// logger so all entries written while the scan runs can be grouped, even when
// several scans append to the same log output.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Scan started")
//
//	l := logger.WithScanID(log, logger.NewScanID())
//	l.Error("Snapshot not written", zap.Error(err))
package logger
