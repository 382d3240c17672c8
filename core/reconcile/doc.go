// Package reconcile merges match history from three places: the snapshot
// files of earlier scans, the log files not yet scanned, and the log the game
// client is still writing.
//
// # Pipeline
//
// Engine.Run executes these steps in order, each finishing before the next:
//
// 1. Locate: open the log folder, then the base folder and the output folder.
// A missing log folder stops the run before anything is touched.
//
// 2. Load prior: decode every snapshot in the output folder.
//
// 3. Select sources: the live log always, plus every log the ledger does not
// list yet. Ledger entries whose files are gone are dropped.
//
// 4. Parse sources: union each selected log into the history.
//
// 5. Partition: split the history by category.
//
// 6. Export: write one snapshot per category. A failed write does not stop
// the others.
//
// 7. Persist ledger.
//
// Running twice over unchanged inputs leaves every snapshot byte-identical,
// since the history is a set and snapshots are written in set order.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(spec, storage.Local{}, logger)
//	summary, err := engine.Run(ctx, reconcile.Options{})
package reconcile
