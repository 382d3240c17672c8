package mocks

import (
	"context"
	"io"

	"rank-tracker/core/storage"

	"github.com/stretchr/testify/mock"
)

// Directory is a mock implementation of storage.Directory
type Directory struct {
	mock.Mock
}

func (m *Directory) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *Directory) List(ctx context.Context) ([]storage.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]storage.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Directory) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	if rc, ok := args.Get(0).(io.ReadCloser); ok {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

// WriteFile runs write against the first return value (when it is an
// io.Writer) before returning the second, so tests can inspect what would
// have been written.
func (m *Directory) WriteFile(ctx context.Context, name string, write func(io.Writer) error) error {
	args := m.Called(ctx, name, write)
	if w, ok := args.Get(0).(io.Writer); ok && w != nil {
		if err := write(w); err != nil {
			return err
		}
	}
	return args.Error(1)
}

// Locator is a mock implementation of storage.Locator
type Locator struct {
	mock.Mock
}

func (m *Locator) Open(path string) (storage.Directory, error) {
	args := m.Called(path)
	if dir, ok := args.Get(0).(storage.Directory); ok {
		return dir, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Locator) Ensure(path string) (storage.Directory, error) {
	args := m.Called(path)
	if dir, ok := args.Get(0).(storage.Directory); ok {
		return dir, args.Error(1)
	}
	return nil, args.Error(1)
}
