package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"slices"

	"rank-tracker/core/storage"

	"go.uber.org/zap"
)

// Ledger is the set of processed source file names.
type Ledger struct {
	names map[string]struct{}
}

type document struct {
	LogFiles []string `json:"logFiles"`
}

// New returns a ledger holding names.
func New(names ...string) *Ledger {
	l := &Ledger{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		l.Add(n)
	}
	return l
}

// Contains reports whether name is recorded.
func (l *Ledger) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Add records name and reports whether it was new.
func (l *Ledger) Add(name string) bool {
	if l.Contains(name) {
		return false
	}
	l.names[name] = struct{}{}
	return true
}

// Remove forgets name and reports whether it was recorded.
func (l *Ledger) Remove(name string) bool {
	if !l.Contains(name) {
		return false
	}
	delete(l.names, name)
	return true
}

// Retain drops every name for which keep returns false and returns the
// dropped names, sorted.
func (l *Ledger) Retain(keep func(name string) bool) []string {
	var dropped []string
	for n := range l.names {
		if !keep(n) {
			dropped = append(dropped, n)
		}
	}
	for _, n := range dropped {
		delete(l.names, n)
	}
	slices.Sort(dropped)
	return dropped
}

// Names returns the recorded names, sorted.
func (l *Ledger) Names() []string {
	names := make([]string, 0, len(l.names))
	for n := range l.names {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of recorded names.
func (l *Ledger) Len() int {
	return len(l.names)
}

// MarshalJSON encodes the ledger with its names sorted.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{LogFiles: l.Names()})
}

// UnmarshalJSON replaces the ledger contents.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*l = *New(doc.LogFiles...)
	return nil
}

// Load reads the ledger file name from dir. A missing file yields an empty
// ledger. So does a file that cannot be decoded, which is logged.
func Load(ctx context.Context, dir storage.Directory, name string, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rc, err := dir.Open(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Error("Failed to open ledger, starting empty", zap.String("file", name), zap.Error(err))
		return New(), nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		logger.Error("Failed to read ledger, starting empty", zap.String("file", name), zap.Error(err))
		return New(), nil
	}

	l := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return l, nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		logger.Error("Malformed ledger, starting empty", zap.String("file", name), zap.Error(err))
		return New(), nil
	}

	return l, nil
}

// Save replaces the ledger file name in dir.
func Save(ctx context.Context, dir storage.Directory, name string, l *Ledger) error {
	data, err := json.MarshalIndent(document{LogFiles: l.Names()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	data = append(data, '\n')

	return dir.WriteFile(ctx, name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
