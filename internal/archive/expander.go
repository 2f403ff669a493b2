// Package archive expands zip archives into scoped temporary directories.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extension is the single filename extension treated as an archive.
// Identification is by extension only, no magic-byte detection.
const Extension = ".zip"

// IsArchive reports whether path names an archive, case-insensitively.
func IsArchive(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Expand extracts the archive at path into a fresh temporary directory and
// returns the directory together with a cleanup function that removes it.
// Callers must invoke cleanup on every exit path. An unreadable or corrupt
// archive returns an error and leaves nothing behind.
func Expand(path string) (dir string, cleanup func(), err error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, fmt.Errorf("could not open archive: %w", err)
	}
	defer reader.Close()

	dir, err = os.MkdirTemp("", "dicom-archive-*")
	if err != nil {
		return "", nil, fmt.Errorf("could not create extraction dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	for _, entry := range reader.File {
		if err := extractEntry(dir, entry); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("could not extract %s: %w", entry.Name, err)
		}
	}

	return dir, cleanup, nil
}

func extractEntry(dir string, entry *zip.File) error {
	target := filepath.Join(dir, filepath.FromSlash(entry.Name))

	// Reject entries that would escape the extraction directory.
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("illegal entry path %q", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
