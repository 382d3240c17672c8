package reconcile

import (
	"context"
	"fmt"
	"io"

	"rank-tracker/core/ledger"
	"rank-tracker/core/logparse"
	"rank-tracker/core/match"
	"rank-tracker/core/storage"
	"rank-tracker/core/tabular"

	"go.uber.org/zap"
)

// Engine runs scans for one Spec.
type Engine struct {
	spec    Spec
	locator storage.Locator
	parser  *logparse.Parser
	codec   *tabular.Codec
	logger  *zap.Logger
}

// NewEngine creates an engine resolving folders through locator.
func NewEngine(spec Spec, locator storage.Locator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		spec:    spec,
		locator: locator,
		parser:  logparse.New(spec.Policy, spec.Location, logger),
		codec:   tabular.New(spec.Policy, spec.Location, logger),
		logger:  logger,
	}
}

// folders groups the handles opened by the locate step. output is nil in a
// dry run when the output folder does not exist yet. present holds the file
// names of the log folder.
type folders struct {
	source  storage.Directory
	base    storage.Directory
	output  storage.Directory
	present []string
}

// Run performs one scan.
func (e *Engine) Run(ctx context.Context, opts Options) (*Summary, error) {
	summary := &Summary{
		Exported:       make(map[match.Category]int),
		ExportFailures: make(map[match.Category]error),
		DryRun:         opts.DryRun,
	}

	dirs, err := e.locate(ctx, opts)
	if err != nil {
		return nil, err
	}

	history, err := e.loadPrior(ctx, dirs.output, summary)
	if err != nil {
		return nil, err
	}

	l, err := ledger.Load(ctx, dirs.base, e.spec.LedgerFile, e.logger)
	if err != nil {
		return nil, err
	}

	summary.SourcesSelected, summary.SourcesForgotten = SelectSources(l, dirs.present, e.spec.LiveSource)

	e.logger.Info("Sources selected",
		zap.Int("selected", len(summary.SourcesSelected)),
		zap.Int("forgotten", len(summary.SourcesForgotten)),
	)

	if err := e.parseSources(ctx, dirs.source, l, history, summary); err != nil {
		return nil, err
	}
	summary.RecordsTotal = history.Len()

	parts := Partition(history)
	for c, part := range parts {
		summary.Exported[c] = part.Len()
	}

	if opts.DryRun {
		e.logger.Info("Dry run, nothing written", zap.Int("records", summary.RecordsTotal))
		return summary, nil
	}

	e.export(ctx, dirs.output, parts, summary)

	if err := ledger.Save(ctx, dirs.base, e.spec.LedgerFile, l); err != nil {
		summary.LedgerError = err
		e.logger.Error("Failed to save ledger", zap.String("file", e.spec.LedgerFile), zap.Error(err))
	} else {
		summary.LedgerSaved = true
	}

	return summary, nil
}

// locate opens every folder a scan touches. The log folder is opened and
// listed first so an unavailable source leaves the file system untouched.
func (e *Engine) locate(ctx context.Context, opts Options) (*folders, error) {
	source, err := e.locator.Open(e.spec.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	entries, err := source.List(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	present := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsFile {
			present = append(present, entry.Name)
		}
	}

	base, err := e.locator.Open(e.spec.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open base directory: %w", err)
	}

	outputPath := storage.Resolve(base.Path(), e.spec.OutputDir)
	var output storage.Directory
	if opts.DryRun {
		output, err = e.locator.Open(outputPath)
		if err != nil {
			e.logger.Debug("Output directory not available", zap.String("path", outputPath), zap.Error(err))
			output = nil
		}
	} else {
		output, err = e.locator.Ensure(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare output directory: %w", err)
		}
	}

	return &folders{source: source, base: base, output: output, present: present}, nil
}

// loadPrior decodes the existing snapshots into a fresh history.
func (e *Engine) loadPrior(ctx context.Context, output storage.Directory, summary *Summary) (*match.Set, error) {
	history := match.NewSet()
	if output == nil {
		return history, nil
	}

	entries, err := output.List(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Warn("Failed to list snapshots", zap.String("path", output.Path()), zap.Error(err))
		return history, nil
	}

	for _, entry := range entries {
		if !entry.IsFile || !e.spec.IsSnapshot(entry.Name) {
			continue
		}

		records, err := e.readWith(ctx, output, entry.Name, e.codec.Decode)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.logger.Warn("Snapshot not loaded", zap.String("file", entry.Name), zap.Error(err))
			continue
		}

		history.AddAll(records)
		summary.RecordsLoaded += records.Len()
	}

	return history, nil
}

// parseSources unions every selected log into history. A log that cannot be
// opened or read is taken out of the ledger again.
func (e *Engine) parseSources(ctx context.Context, source storage.Directory, l *ledger.Ledger, history *match.Set, summary *Summary) error {
	for _, name := range summary.SourcesSelected {
		records, err := e.readWith(ctx, source, name, e.parser.Parse)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			e.logger.Warn("Source skipped", zap.String("file", name), zap.Error(err))
			l.Remove(name)
			summary.SourcesSkipped = append(summary.SourcesSkipped, name)
			continue
		}

		added := e.merge(history, records)
		summary.SourcesParsed = append(summary.SourcesParsed, name)
		summary.RecordsParsed += records.Len()
		summary.RecordsAdded += added

		e.logger.Debug("Source parsed",
			zap.String("file", name),
			zap.Int("records", records.Len()),
			zap.Int("added", added),
		)
	}
	return nil
}

// merge adds parsed records to history and returns how many were new. The
// legacy schema cannot store skill, so it is dropped before the union. A
// record whose skill-less form is already present came from a legacy
// snapshot and is not added again.
func (e *Engine) merge(history, parsed *match.Set) int {
	added := 0
	for _, r := range parsed.Records() {
		bare := r.WithoutSkill()
		if e.spec.Schema == tabular.Legacy {
			r = bare
		} else if history.Contains(bare) {
			continue
		}
		if history.Add(r) {
			added++
		}
	}
	return added
}

// export writes one snapshot per category.
func (e *Engine) export(ctx context.Context, output storage.Directory, parts map[match.Category]*match.Set, summary *Summary) {
	for _, c := range summary.Categories() {
		name := e.spec.SnapshotName(c)
		part := parts[c]

		err := output.WriteFile(ctx, name, func(w io.Writer) error {
			return e.codec.Encode(w, part, e.spec.Schema)
		})
		if err != nil {
			summary.ExportFailures[c] = err
			e.logger.Error("Failed to write snapshot", zap.String("file", name), zap.Error(err))
			continue
		}

		e.logger.Info("Snapshot written", zap.String("file", name), zap.Int("records", part.Len()))
	}
}

func (e *Engine) readWith(ctx context.Context, dir storage.Directory, name string, read func(io.Reader, string) (*match.Set, error)) (*match.Set, error) {
	rc, err := dir.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return read(rc, name)
}
