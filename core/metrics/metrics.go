// Package metrics exposes scan statistics as Prometheus metrics. The tool runs
// once and exits, so instead of serving them the registry is written to a
// textfile that node-exporter's textfile collector picks up.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "ranktracker"
	subsystem = "scan"
)

// Config holds metrics settings.
type Config struct {
	// Textfile is where metrics are written after a scan. Empty disables it.
	Textfile string `mapstructure:"textfile" default:""`
}

// Recorder collects the counters of one process. A nil Recorder ignores
// every call.
type Recorder struct {
	registry *prometheus.Registry

	sourcesSelected prometheus.Counter
	sourcesParsed   prometheus.Counter
	sourcesSkipped  prometheus.Counter
	recordsLoaded   prometheus.Counter
	recordsParsed   prometheus.Counter
	recordsAdded    prometheus.Counter
	exportFailures  prometheus.Counter
	categoryRecords *prometheus.GaugeVec
	scanDuration    prometheus.Gauge
	lastScan        prometheus.Gauge
}

// NewRecorder creates a recorder on its own registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &Recorder{
		registry:        registry,
		sourcesSelected: counter("sources_selected_total", "Log files selected for parsing"),
		sourcesParsed:   counter("sources_parsed_total", "Log files read to the end"),
		sourcesSkipped:  counter("sources_skipped_total", "Selected log files that could not be read"),
		recordsLoaded:   counter("records_loaded_total", "Records loaded from existing snapshots"),
		recordsParsed:   counter("records_parsed_total", "Records parsed from log files"),
		recordsAdded:    counter("records_added_total", "Parsed records not already in the history"),
		exportFailures:  counter("export_failures_total", "Snapshot files that could not be written"),
		categoryRecords: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "category_records",
			Help:      "Records in the history per category",
		}, []string{"category"}),
		scanDuration: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Duration of the last scan",
		}),
		lastScan: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last scan finished",
		}),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// SourcesSelected counts log files chosen for parsing.
func (r *Recorder) SourcesSelected(n int) {
	if r != nil {
		add(r.sourcesSelected, n)
	}
}

// SourcesParsed counts log files read to the end.
func (r *Recorder) SourcesParsed(n int) {
	if r != nil {
		add(r.sourcesParsed, n)
	}
}

// SourcesSkipped counts selected log files that could not be read.
func (r *Recorder) SourcesSkipped(n int) {
	if r != nil {
		add(r.sourcesSkipped, n)
	}
}

// RecordsLoaded counts records decoded from snapshots.
func (r *Recorder) RecordsLoaded(n int) {
	if r != nil {
		add(r.recordsLoaded, n)
	}
}

// RecordsParsed counts records extracted from log files.
func (r *Recorder) RecordsParsed(n int) {
	if r != nil {
		add(r.recordsParsed, n)
	}
}

// RecordsAdded counts records that were new to the history.
func (r *Recorder) RecordsAdded(n int) {
	if r != nil {
		add(r.recordsAdded, n)
	}
}

// ExportFailures counts snapshot files that could not be written.
func (r *Recorder) ExportFailures(n int) {
	if r != nil {
		add(r.exportFailures, n)
	}
}

// CategoryRecords sets the history size of one category.
func (r *Recorder) CategoryRecords(category string, n int) {
	if r != nil {
		r.categoryRecords.WithLabelValues(category).Set(float64(n))
	}
}

// ScanFinished records how long the scan took and when it ended.
func (r *Recorder) ScanFinished(took time.Duration, at time.Time) {
	if r == nil {
		return
	}
	r.scanDuration.Set(took.Seconds())
	r.lastScan.Set(float64(at.Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func add(c prometheus.Counter, n int) {
	if n > 0 {
		c.Add(float64(n))
	}
}
