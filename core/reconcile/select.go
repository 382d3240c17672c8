package reconcile

import (
	"rank-tracker/core/ledger"
	"rank-tracker/core/match"
)

// SelectSources picks the logs to parse from the file names present in the
// log folder. The live log is picked whenever it is present. Any other name
// is picked when the ledger does not list it yet, and is added to the ledger
// at once. Ledger entries naming files that are no longer present are
// dropped, as is the live log should it ever have been recorded. The result
// keeps the order of present.
func SelectSources(l *ledger.Ledger, present []string, live string) (selected, forgotten []string) {
	seen := make(map[string]struct{}, len(present))
	for _, name := range present {
		seen[name] = struct{}{}

		if name == live {
			selected = append(selected, name)
			continue
		}
		if l.Add(name) {
			selected = append(selected, name)
		}
	}

	forgotten = l.Retain(func(name string) bool {
		_, ok := seen[name]
		return ok && name != live
	})

	return selected, forgotten
}

// Partition splits a history into one set per category.
func Partition(history *match.Set) map[match.Category]*match.Set {
	parts := make(map[match.Category]*match.Set)
	if history == nil {
		return parts
	}
	for _, r := range history.Records() {
		part, ok := parts[r.Category()]
		if !ok {
			part = match.NewSet()
			parts[r.Category()] = part
		}
		part.Add(r)
	}
	return parts
}
