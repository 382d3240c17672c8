package reconcile

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"rank-tracker/core/match"
	"rank-tracker/core/tabular"
)

// ErrSourceUnavailable is returned when the log folder cannot be opened.
var ErrSourceUnavailable = errors.New("source directory unavailable")

// Spec defines the folders and formats a scan works with.
type Spec struct {
	// SourceDir is the folder holding the game client logs.
	SourceDir string

	// BaseDir holds the ledger file.
	BaseDir string

	// OutputDir is the snapshot folder. A relative path is taken from BaseDir.
	OutputDir string

	// LiveSource is the log the client is still writing. It is parsed on
	// every scan and never recorded in the ledger.
	LiveSource string

	// LedgerFile is the ledger file name inside BaseDir.
	LedgerFile string

	// Prefix and Suffix frame the category name in snapshot file names:
	// <Prefix><category>.<Suffix>
	Prefix string
	Suffix string

	// Schema is the layout snapshots are written in.
	Schema tabular.Schema

	// Policy decides which categories are tracked.
	Policy match.Policy

	// Location is the time zone of log start lines and snapshot rows.
	// Nil means local time.
	Location *time.Location
}

// SnapshotName returns the snapshot file name for a category.
func (s *Spec) SnapshotName(c match.Category) string {
	return s.Prefix + c.Name() + "." + s.Suffix
}

// IsSnapshot reports whether a file name follows the snapshot pattern.
func (s *Spec) IsSnapshot(name string) bool {
	ext := "." + s.Suffix
	return len(name) > len(s.Prefix)+len(ext) &&
		strings.HasPrefix(name, s.Prefix) &&
		strings.HasSuffix(name, ext)
}

// Options controls a single run.
type Options struct {
	// DryRun stops after partitioning. Nothing is written and the output
	// folder is not created.
	DryRun bool
}

// Summary reports what a run did.
type Summary struct {
	// SourcesSelected lists the logs chosen for parsing.
	SourcesSelected []string

	// SourcesParsed lists the logs read to the end.
	SourcesParsed []string

	// SourcesSkipped lists the selected logs that could not be opened or
	// read. They are left out of the ledger so the next scan retries them.
	SourcesSkipped []string

	// SourcesForgotten lists ledger entries dropped because the file is gone.
	SourcesForgotten []string

	// RecordsLoaded counts records decoded from existing snapshots.
	RecordsLoaded int

	// RecordsParsed counts records extracted from logs, duplicates included.
	RecordsParsed int

	// RecordsAdded counts parsed records that were new to the history.
	RecordsAdded int

	// RecordsTotal is the size of the merged history.
	RecordsTotal int

	// Exported holds the record count of each category snapshot, including
	// the ones listed in ExportFailures. In a dry run nothing is written.
	Exported map[match.Category]int

	// ExportFailures holds the error of each snapshot that was not written.
	ExportFailures map[match.Category]error

	// LedgerSaved is true when the ledger was persisted.
	LedgerSaved bool

	// LedgerError is the reason the ledger was not persisted, if it was attempted.
	LedgerError error

	// DryRun is true when steps 6 and 7 were skipped.
	DryRun bool
}

// Categories returns the exported categories in ascending order.
func (s *Summary) Categories() []match.Category {
	return slices.Sorted(maps.Keys(s.Exported))
}
