package storage

// Config holds the locations used by a scan.
type Config struct {
	// BaseDir holds the ledger and the output folder.
	BaseDir string `mapstructure:"base_dir" default:"."`
	// OutputDir is the folder for exported snapshots, relative to BaseDir unless absolute.
	OutputDir string `mapstructure:"output_dir" default:"csv"`
	// LogDir is the game client log folder. Empty selects DefaultSourceDir.
	LogDir string `mapstructure:"log_dir" default:""`
	// LiveLog is the log file the client is still writing to.
	LiveLog string `mapstructure:"live_log" default:"Launch.log"`
	// LedgerFile is the name of the processed-file ledger inside BaseDir.
	LedgerFile string `mapstructure:"ledger_file" default:"scannedfiles.json"`
	// Prefix is prepended to the category name of snapshot files.
	Prefix string `mapstructure:"prefix" default:"results-"`
	// Suffix is the snapshot file extension, without the dot.
	Suffix string `mapstructure:"suffix" default:"csv"`
}
