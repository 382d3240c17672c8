// Package storage provides the file-system layer used by a scan.
//
// A Directory is a handle on one local folder: it lists entries, opens files for
// reading and writes files atomically through a temporary file next to the
// target that is renamed into place.
//
// # Interfaces
//
// Directory and Locator abstract the file system. Testify mocks of both live
// in core/storage/mocks.
//
// # Usage
//
//	dir, err := storage.Local{}.Ensure(filepath.Join(base, "csv"))
//	err = dir.WriteFile(ctx, "results-1v1.csv", func(w io.Writer) error {
//	    return codec.Encode(w, records, tabular.Extended)
//	})
package storage
