package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolvePassesThroughFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "report.pdf")
	writeFile(t, file)

	r := NewResolver(nil, nil)
	files, err := r.Resolve([]string{file})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != file {
		t.Errorf("expected [%s], got %v", file, files)
	}
}

func TestResolveWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"))
	writeFile(t, filepath.Join(dir, "sub", "b.txt"))
	writeFile(t, filepath.Join(dir, "sub", "image.png"))
	writeFile(t, filepath.Join(dir, "skip", "c.txt"))

	r := NewResolver(nil, []string{"skip/**"})
	files, err := r.Resolve([]string{dir})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 document files, got %v", files)
	}
	for _, f := range files {
		if filepath.Ext(f) == ".png" {
			t.Errorf("non-document file resolved: %s", f)
		}
		if filepath.Base(filepath.Dir(f)) == "skip" {
			t.Errorf("excluded file resolved: %s", f)
		}
	}
}

func TestResolveSkipsMissingPaths(t *testing.T) {
	r := NewResolver(nil, nil)
	files, err := r.Resolve([]string{"/nonexistent/path.pdf"})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("expected missing path to be skipped, got %v", files)
	}
}
