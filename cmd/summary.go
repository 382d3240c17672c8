package cmd

import (
	"fmt"
	"io"

	"rank-tracker/core/reconcile"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.Bold)
	good    = color.New(color.FgHiGreen)
	warn    = color.New(color.FgYellow)
	bad     = color.New(color.FgRed)
	dim     = color.New(color.FgHiBlack)
)

// printSummary writes a human readable report of a scan.
func printSummary(w io.Writer, s *reconcile.Summary) {
	title := "Scan complete"
	if s.DryRun {
		title = "Dry run, nothing written"
	}
	heading.Fprintln(w, title)

	fmt.Fprintf(w, "  sources   %d parsed", len(s.SourcesParsed))
	if n := len(s.SourcesSkipped); n > 0 {
		fmt.Fprintf(w, ", %s", warn.Sprintf("%d skipped", n))
	}
	if n := len(s.SourcesForgotten); n > 0 {
		fmt.Fprintf(w, ", %s", dim.Sprintf("%d gone", n))
	}
	fmt.Fprintln(w)
	for _, name := range s.SourcesSkipped {
		fmt.Fprintf(w, "    %s %s\n", warn.Sprint("skipped"), name)
	}

	added := fmt.Sprintf("%d new", s.RecordsAdded)
	if s.RecordsAdded > 0 {
		added = good.Sprint(added)
	}
	fmt.Fprintf(w, "  records   %s, %d total\n", added, s.RecordsTotal)

	for _, c := range s.Categories() {
		line := fmt.Sprintf("    %-10s %d", c.Name(), s.Exported[c])
		if err, failed := s.ExportFailures[c]; failed {
			fmt.Fprintf(w, "%s %s\n", line, bad.Sprintf("not written: %v", err))
			continue
		}
		fmt.Fprintln(w, line)
	}

	switch {
	case s.DryRun:
	case s.LedgerSaved:
		dim.Fprintln(w, "  ledger    saved")
	default:
		fmt.Fprintf(w, "  ledger    %s\n", bad.Sprintf("not saved: %v", s.LedgerError))
	}
}
