// Package tracker connects the configuration to the scan engine.
//
// The Service resolves folders, builds a reconcile.Spec, runs scans and
// reports their counters as metrics. It also exposes the ledger so files can
// be listed or forgotten, and prints a single category's history.
package tracker
