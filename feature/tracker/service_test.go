package tracker_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rank-tracker/core/match"
	"rank-tracker/core/metrics"
	"rank-tracker/core/reconcile"
	"rank-tracker/core/storage"
	"rank-tracker/core/storage/mocks"
	"rank-tracker/core/tabular"
	"rank-tracker/feature/tracker"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const rankedLog = `Log: Log file open, 09/24/15 19:34:25
[640.02] RankPoints: ClientSetSkill Playlist=10 Mu=28.9511 Sigma=2.5012 DeltaRankPoints=12 RankPoints=723
[1004.89] RankPoints: ClientSetSkill Playlist=10 Mu=28.6374 Sigma=2.4856 DeltaRankPoints=-10 RankPoints=735
[1400.12] RankPoints: ClientSetSkill Playlist=0 Mu=24.1000 Sigma=4.2000 DeltaRankPoints=3 RankPoints=120
[2201.50] RankPoints: ClientSetSkill Playlist=12 Mu=25.0001 Sigma=3.1000 DeltaRankPoints=-11 RankPoints=640
`

type env struct {
	base  string
	logs  string
	store storage.Config
	cfg   tracker.Config
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{base: t.TempDir(), logs: t.TempDir()}
	e.store = storage.Config{
		BaseDir:    e.base,
		OutputDir:  "csv",
		LogDir:     e.logs,
		LiveLog:    "Launch.log",
		LedgerFile: "scannedfiles.json",
		Prefix:     "results-",
		Suffix:     "csv",
	}
	e.cfg = tracker.Config{Schema: "extended", Timezone: "UTC"}
	require.NoError(t, os.WriteFile(filepath.Join(e.logs, "Launch_1.log"), []byte(rankedLog), 0644))
	return e
}

func (e *env) service(m metrics.Config) *tracker.Service {
	return tracker.NewService(e.store, e.cfg, m, storage.Local{}, zap.NewNop())
}

func TestConfig(t *testing.T) {
	cfg := tracker.Config{IncludeUnranked: true, Schema: "legacy", Timezone: "America/New_York"}

	assert.True(t, cfg.Policy().IncludeUnranked)

	schema, err := cfg.SnapshotSchema()
	require.NoError(t, err)
	assert.Equal(t, tabular.Legacy, schema)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())

	loc, err = tracker.Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	_, err = tracker.Config{Timezone: "Mars/Olympus"}.Location()
	assert.Error(t, err)

	_, err = tracker.Config{Schema: "xml"}.SnapshotSchema()
	assert.ErrorIs(t, err, tabular.ErrUnknownSchema)
}

func TestService_Spec(t *testing.T) {
	e := newEnv(t)
	spec, err := e.service(metrics.Config{}).Spec()
	require.NoError(t, err)

	assert.Equal(t, e.logs, spec.SourceDir)
	assert.Equal(t, e.base, spec.BaseDir)
	assert.Equal(t, "results-1v1.csv", spec.SnapshotName(match.Ranked1v1))
	assert.Equal(t, tabular.Extended, spec.Schema)
	assert.Equal(t, time.UTC, spec.Location)

	e.store.LogDir = ""
	spec, err = e.service(metrics.Config{}).Spec()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(spec.SourceDir, filepath.Join("TAGame", "Logs")))
}

func TestService_Scan(t *testing.T) {
	e := newEnv(t)
	textfile := filepath.Join(e.base, "ranktracker.prom")
	svc := e.service(metrics.Config{Textfile: textfile})

	summary, err := svc.Scan(context.Background(), reconcile.Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.RecordsTotal)
	assert.Equal(t, map[match.Category]int{match.Ranked1v1: 2, match.SoloRanked3v3: 1}, summary.Exported)
	assert.FileExists(t, filepath.Join(e.base, "csv", "results-1v1.csv"))
	assert.FileExists(t, filepath.Join(e.base, "csv", "results-solo-3v3.csv"))

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ranktracker_scan_records_added_total 3")
	assert.Contains(t, string(data), `ranktracker_scan_category_records{category="1v1"} 2`)

	count, err := testutil.GatherAndCount(svc.Recorder().Registry(), "ranktracker_scan_category_records")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_ScanIncludeUnranked(t *testing.T) {
	e := newEnv(t)
	e.cfg.IncludeUnranked = true

	summary, err := e.service(metrics.Config{}).Scan(context.Background(), reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.RecordsTotal)
	assert.FileExists(t, filepath.Join(e.base, "csv", "results-unranked.csv"))
}

func TestService_ScanDryRun(t *testing.T) {
	e := newEnv(t)
	textfile := filepath.Join(e.base, "ranktracker.prom")

	summary, err := e.service(metrics.Config{Textfile: textfile}).Scan(context.Background(), reconcile.Options{DryRun: true})
	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.NoFileExists(t, textfile)
	assert.NoDirExists(t, filepath.Join(e.base, "csv"))
}

func TestService_ScanErrors(t *testing.T) {
	e := newEnv(t)
	e.store.LogDir = filepath.Join(e.logs, "missing")
	_, err := e.service(metrics.Config{}).Scan(context.Background(), reconcile.Options{})
	assert.ErrorIs(t, err, reconcile.ErrSourceUnavailable)

	e = newEnv(t)
	e.cfg.Schema = "xml"
	_, err = e.service(metrics.Config{}).Scan(context.Background(), reconcile.Options{})
	assert.ErrorIs(t, err, tabular.ErrUnknownSchema)
}

func TestService_LedgerAndForget(t *testing.T) {
	e := newEnv(t)
	svc := e.service(metrics.Config{})
	ctx := context.Background()

	_, err := svc.Scan(ctx, reconcile.Options{})
	require.NoError(t, err)

	l, err := svc.Ledger(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Launch_1.log"}, l.Names())

	removed, err := svc.Forget(ctx, "Launch_1.log", "never.log")
	require.NoError(t, err)
	assert.Equal(t, []string{"Launch_1.log"}, removed)

	l, err = svc.Ledger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())

	removed, err = svc.Forget(ctx, "never.log")
	require.NoError(t, err)
	assert.Empty(t, removed)

	summary, err := svc.Scan(ctx, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Launch_1.log"}, summary.SourcesSelected)
	assert.Equal(t, 0, summary.RecordsAdded)
}

func TestService_Export(t *testing.T) {
	e := newEnv(t)
	svc := e.service(metrics.Config{})
	ctx := context.Background()

	_, err := svc.Scan(ctx, reconcile.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := svc.Export(ctx, &buf, "Ranked 1v1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t,
		tabular.ExtendedHeader+"\n"+
			"2015-09-24,19:45:05,1v1,12,723,28.9511,2.5012\n"+
			"2015-09-24,19:51:09,1v1,-10,735,28.6374,2.4856\n",
		buf.String())

	_, err = svc.Export(ctx, &buf, "unranked")
	assert.ErrorIs(t, err, match.ErrInvalidCategory)

	_, err = svc.Export(ctx, &buf, "3v3")
	assert.Error(t, err)
}

func TestService_ExportLegacy(t *testing.T) {
	e := newEnv(t)
	_, err := e.service(metrics.Config{}).Scan(context.Background(), reconcile.Options{})
	require.NoError(t, err)

	e.cfg.Schema = "legacy"
	var buf bytes.Buffer
	n, err := e.service(metrics.Config{}).Export(context.Background(), &buf, "solo-3v3")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, tabular.LegacyHeader+"\n2015-09-24,20:11:06,solo-3v3,-11,640\n", buf.String())
}

func TestService_BaseDirUnavailable(t *testing.T) {
	locator := new(mocks.Locator)
	locator.On("Open", "/nowhere").Return(nil, errors.New("no such directory"))

	svc := tracker.NewService(storage.Config{BaseDir: "/nowhere", LedgerFile: "scannedfiles.json"},
		tracker.Config{}, metrics.Config{}, locator, zap.NewNop())

	_, err := svc.Ledger(context.Background())
	assert.Error(t, err)
	_, err = svc.Forget(context.Background(), "log1")
	assert.Error(t, err)
	locator.AssertNumberOfCalls(t, "Open", 2)
}

func TestService_NilLogger(t *testing.T) {
	e := newEnv(t)
	svc := tracker.NewService(e.store, e.cfg, metrics.Config{}, storage.Local{}, nil)
	ctx := context.Background()

	_, err := svc.Scan(ctx, reconcile.Options{})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		removed, err := svc.Forget(ctx, "Launch_1.log")
		require.NoError(t, err)
		assert.Equal(t, []string{"Launch_1.log"}, removed)
	})
}
