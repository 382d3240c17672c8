package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"rank-tracker/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Open(t *testing.T) {
	t.Run("Existing", func(t *testing.T) {
		root := t.TempDir()
		dir, err := storage.Local{}.Open(root)
		require.NoError(t, err)
		assert.Equal(t, root, dir.Path())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := storage.Local{}.Open(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := storage.Local{}.Open(file)
		assert.ErrorIs(t, err, storage.ErrNotDirectory)
	})
}

func TestLocal_Ensure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b")
	dir, err := storage.Local{}.Ensure(path)
	require.NoError(t, err)
	assert.DirExists(t, path)

	again, err := storage.Local{}.Ensure(path)
	require.NoError(t, err)
	assert.Equal(t, dir.Path(), again.Path())
}

func TestDirectory_ListOpenWrite(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.log"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.log"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))

	dir, err := storage.Local{}.Open(root)
	require.NoError(t, err)

	t.Run("ListSorted", func(t *testing.T) {
		entries, err := dir.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []storage.Entry{
			{Name: "a.log", IsFile: true},
			{Name: "b.log", IsFile: true},
			{Name: "sub", IsFile: false},
		}, entries)
	})

	t.Run("Open", func(t *testing.T) {
		rc, err := dir.Open(ctx, "a.log")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "a", string(data))

		_, err = dir.Open(ctx, "missing.log")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("WriteFileReplaces", func(t *testing.T) {
		err := dir.WriteFile(ctx, "a.log", func(w io.Writer) error {
			_, err := io.WriteString(w, "replaced")
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, "a.log"))
		require.NoError(t, err)
		assert.Equal(t, "replaced", string(data))
	})

	t.Run("WriteFileFailureKeepsOriginal", func(t *testing.T) {
		err := dir.WriteFile(ctx, "b.log", func(w io.Writer) error {
			_, _ = io.WriteString(w, "partial")
			return errors.New("boom")
		})
		assert.Error(t, err)

		data, err := os.ReadFile(filepath.Join(root, "b.log"))
		require.NoError(t, err)
		assert.Equal(t, "b", string(data))

		entries, err := dir.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 3, "temp file must be cleaned up")
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := dir.List(cancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestResolve(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "csv"), storage.Resolve("base", "csv"))
	abs := filepath.Join(t.TempDir(), "csv")
	assert.Equal(t, abs, storage.Resolve("base", abs))
}

func TestDefaultSourceDir(t *testing.T) {
	dir, err := storage.DefaultSourceDir()
	require.NoError(t, err)
	assert.Equal(t, "Logs", filepath.Base(dir))
	assert.Equal(t, "TAGame", filepath.Base(filepath.Dir(dir)))
}

func TestReadLines(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"Empty", "", nil},
		{"NoTrailingNewline", "a\nb", []string{"a", "b"}},
		{"TrailingNewline", "a\nb\n", []string{"a", "b"}},
		{"WindowsLineEndings", "a\r\nb\r\n", []string{"a", "b"}},
		{"BlankLines", "a\n\nb", []string{"a", "", "b"}},
		{"LongLine", "a\n" + long + "\nb\n", []string{"a", long, "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			err := storage.ReadLines(strings.NewReader(tt.input), func(line string) bool {
				got = append(got, line)
				return true
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLines_Stop(t *testing.T) {
	var got []string
	err := storage.ReadLines(strings.NewReader("a\nb\nc\n"), func(line string) bool {
		got = append(got, line)
		return line != "b"
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestReadLines_ReadError(t *testing.T) {
	err := storage.ReadLines(iotest.ErrReader(errors.New("disk gone")), func(string) bool { return true })
	assert.EqualError(t, err, "disk gone")
}
