package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotDirectory is returned when a path exists but is not a folder.
var ErrNotDirectory = errors.New("not a directory")

// Entry is one item of a directory listing.
type Entry struct {
	Name   string
	IsFile bool
}

// Directory defines the operations a scan needs on a folder.
type Directory interface {
	// Path returns the absolute location of the folder.
	Path() string
	// List returns the folder entries sorted by name.
	List(ctx context.Context) ([]Entry, error)
	// Open opens a file in the folder for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// WriteFile replaces a file in the folder with the output of write.
	// The content is written to a temporary file first and renamed over name
	// only when write succeeds.
	WriteFile(ctx context.Context, name string, write func(io.Writer) error) error
}

// Locator resolves folder paths into Directory handles.
type Locator interface {
	// Open returns a handle for an existing folder.
	Open(path string) (Directory, error)
	// Ensure returns a handle for a folder, creating it if needed.
	Ensure(path string) (Directory, error)
}

// Local is the Locator for the host file system.
type Local struct{}

// Open returns a handle for an existing folder.
func (Local) Open(path string) (Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}

	return &localDirectory{path: abs}, nil
}

// Ensure returns a handle for a folder, creating it and its parents if needed.
func (l Local) Ensure(path string) (Directory, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return l.Open(path)
}

type localDirectory struct {
	path string
}

func (d *localDirectory) Path() string {
	return d.path
}

func (d *localDirectory) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), IsFile: de.Type().IsRegular()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (d *localDirectory) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(d.path, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return f, nil
}

func (d *localDirectory) WriteFile(ctx context.Context, name string, write func(io.Writer) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.path, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpPath, filepath.Join(d.path, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	return nil
}
