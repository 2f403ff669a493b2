package dicom

import (
	"io/fs"
	"path/filepath"
)

// WalkFiles calls fn for every regular file under root, depth-first in
// deterministic per-directory listing order. Entries that cannot be read
// or statted are silently skipped. fn returning false stops the walk.
// The walk is read-only and restartable; a fresh call re-walks the tree.
func WalkFiles(root string, fn func(path string) bool) {
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directory or transient entry: skip, never fatal.
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !fn(path) {
			return fs.SkipAll
		}
		return nil
	})
}
