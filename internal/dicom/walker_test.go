package dicom

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWalkFilesDepthFirstOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.dcm")
	writeFile(t, dir, "a/inner.dcm")
	writeFile(t, dir, "c.dcm")

	var got []string
	WalkFiles(dir, func(path string) bool {
		rel, _ := filepath.Rel(dir, path)
		got = append(got, filepath.ToSlash(rel))
		return true
	})

	want := []string{"a/inner.dcm", "b.dcm", "c.dcm"}
	if len(got) != len(want) {
		t.Fatalf("walked %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalkFilesStopsWhenFnReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.dcm")
	writeFile(t, dir, "b.dcm")
	writeFile(t, dir, "c.dcm")

	visited := 0
	WalkFiles(dir, func(string) bool {
		visited++
		return false
	})

	if visited != 1 {
		t.Errorf("visited %d files after stop, want 1", visited)
	}
}

func TestWalkFilesMissingRoot(t *testing.T) {
	visited := 0
	WalkFiles(filepath.Join(t.TempDir(), "does-not-exist"), func(string) bool {
		visited++
		return true
	})

	if visited != 0 {
		t.Errorf("visited %d files under a missing root, want 0", visited)
	}
}
