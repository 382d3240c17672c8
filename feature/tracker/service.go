package tracker

import (
	"context"
	"fmt"
	"io"
	"time"

	"rank-tracker/core/ledger"
	"rank-tracker/core/logger"
	"rank-tracker/core/match"
	"rank-tracker/core/metrics"
	"rank-tracker/core/reconcile"
	"rank-tracker/core/storage"
	"rank-tracker/core/tabular"

	"go.uber.org/zap"
)

// Service handles scans and ledger maintenance.
type Service struct {
	store    storage.Config
	cfg      Config
	metrics  metrics.Config
	locator  storage.Locator
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// NewService creates a new tracker service.
func NewService(store storage.Config, cfg Config, metricsCfg metrics.Config, locator storage.Locator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		cfg:      cfg,
		metrics:  metricsCfg,
		locator:  locator,
		recorder: metrics.NewRecorder(),
		logger:   logger,
	}
}

// Recorder returns the metrics collected by this service.
func (s *Service) Recorder() *metrics.Recorder {
	return s.recorder
}

// Spec builds the engine spec from the configuration.
func (s *Service) Spec() (*reconcile.Spec, error) {
	schema, err := s.cfg.SnapshotSchema()
	if err != nil {
		return nil, err
	}
	loc, err := s.cfg.Location()
	if err != nil {
		return nil, err
	}

	sourceDir := s.store.LogDir
	if sourceDir == "" {
		if sourceDir, err = storage.DefaultSourceDir(); err != nil {
			return nil, err
		}
	}

	return &reconcile.Spec{
		SourceDir:  sourceDir,
		BaseDir:    s.store.BaseDir,
		OutputDir:  s.store.OutputDir,
		LiveSource: s.store.LiveLog,
		LedgerFile: s.store.LedgerFile,
		Prefix:     s.store.Prefix,
		Suffix:     s.store.Suffix,
		Schema:     schema,
		Policy:     s.cfg.Policy(),
		Location:   loc,
	}, nil
}

// Scan runs one scan and records its counters.
func (s *Service) Scan(ctx context.Context, opts reconcile.Options) (*reconcile.Summary, error) {
	l := logger.WithScanID(s.logger, logger.NewScanID())

	spec, err := s.Spec()
	if err != nil {
		return nil, err
	}

	l.Info("Scan started",
		zap.String("source", spec.SourceDir),
		zap.String("base", spec.BaseDir),
		zap.Bool("dry_run", opts.DryRun),
	)

	started := time.Now()
	summary, err := reconcile.NewEngine(*spec, s.locator, l).Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	took := time.Since(started)

	l.Info("Scan finished",
		zap.Int("sources", len(summary.SourcesParsed)),
		zap.Int("skipped", len(summary.SourcesSkipped)),
		zap.Int("added", summary.RecordsAdded),
		zap.Int("total", summary.RecordsTotal),
		zap.Duration("took", took),
	)

	if opts.DryRun {
		return summary, nil
	}

	s.record(summary, took)
	if err := s.recorder.WriteTextfile(s.metrics.Textfile); err != nil {
		l.Warn("Failed to write metrics", zap.Error(err))
	}

	return summary, nil
}

func (s *Service) record(summary *reconcile.Summary, took time.Duration) {
	s.recorder.SourcesSelected(len(summary.SourcesSelected))
	s.recorder.SourcesParsed(len(summary.SourcesParsed))
	s.recorder.SourcesSkipped(len(summary.SourcesSkipped))
	s.recorder.RecordsLoaded(summary.RecordsLoaded)
	s.recorder.RecordsParsed(summary.RecordsParsed)
	s.recorder.RecordsAdded(summary.RecordsAdded)
	s.recorder.ExportFailures(len(summary.ExportFailures))
	for c, n := range summary.Exported {
		s.recorder.CategoryRecords(c.Name(), n)
	}
	s.recorder.ScanFinished(took, time.Now())
}

// Ledger loads the processed-file ledger.
func (s *Service) Ledger(ctx context.Context) (*ledger.Ledger, error) {
	base, err := s.locator.Open(s.store.BaseDir)
	if err != nil {
		return nil, err
	}
	return ledger.Load(ctx, base, s.store.LedgerFile, s.logger)
}

// Forget removes names from the ledger so the next scan parses them again.
// It returns the names that were recorded.
func (s *Service) Forget(ctx context.Context, names ...string) ([]string, error) {
	base, err := s.locator.Open(s.store.BaseDir)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Load(ctx, base, s.store.LedgerFile, s.logger)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range names {
		if l.Remove(name) {
			removed = append(removed, name)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}

	if err := ledger.Save(ctx, base, s.store.LedgerFile, l); err != nil {
		return nil, err
	}
	s.logger.Info("Ledger entries forgotten", zap.Strings("files", removed))

	return removed, nil
}

// Export writes the stored history of one category to w in the configured
// schema and returns the number of records written.
func (s *Service) Export(ctx context.Context, w io.Writer, category string) (int, error) {
	spec, err := s.Spec()
	if err != nil {
		return 0, err
	}

	c := match.ParseCategory(category)
	if !spec.Policy.Valid(c) {
		return 0, fmt.Errorf("%w: %s", match.ErrInvalidCategory, category)
	}

	base, err := s.locator.Open(spec.BaseDir)
	if err != nil {
		return 0, err
	}
	output, err := s.locator.Open(storage.Resolve(base.Path(), spec.OutputDir))
	if err != nil {
		return 0, err
	}

	rc, err := output.Open(ctx, spec.SnapshotName(c))
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	codec := tabular.New(spec.Policy, spec.Location, s.logger)
	records, err := codec.Decode(rc, spec.SnapshotName(c))
	if err != nil {
		return 0, err
	}
	if err := codec.Encode(w, records, spec.Schema); err != nil {
		return 0, err
	}

	return records.Len(), nil
}
