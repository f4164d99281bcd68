package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_CreateReadGlob(t *testing.T) {
	fs := OSFileSystem{}
	dir := filepath.Join(t.TempDir(), "nested", "out")

	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, name := range []string{"b.csv", "a.csv"} {
		w, err := fs.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := w.Write([]byte(name)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	data, err := fs.ReadFile(filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "a.csv" {
		t.Errorf("expected %q, got %q", "a.csv", data)
	}

	matches, err := fs.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(matches) != 2 || filepath.Base(matches[0]) != "a.csv" {
		t.Errorf("unexpected glob result: %v", matches)
	}
}

func TestMemoryFileSystem_CreateRequiresParent(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Create("/out/stats.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}

	if err := mfs.MkdirAll("/out", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	w, err := mfs.Create("/out/stats.csv")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("created content")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := mfs.ReadFile("/out/stats.csv")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "created content" {
		t.Errorf("expected 'created content', got %q", data)
	}
}

func TestMemoryFileSystem_RelativePaths(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.MkdirAll("results/run", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if !mfs.Exists("results") || !mfs.Exists("results/run") {
		t.Error("expected parent and leaf directories to exist")
	}
	if _, err := mfs.Create("results/run/x.csv"); err != nil {
		t.Errorf("Create under relative dir failed: %v", err)
	}
	if _, err := mfs.Create("top.csv"); err != nil {
		t.Errorf("Create in current dir failed: %v", err)
	}
}

func TestMemoryFileSystem_OpenAndStat(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/frames/0001.png", []byte("pixels"))

	f, err := mfs.Open("/frames/0001.png")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("expected 'pixels', got %q", data)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "0001.png" || info.Size() != 6 || info.IsDir() {
		t.Errorf("unexpected file info: %s %d %v", info.Name(), info.Size(), info.IsDir())
	}

	if _, err := mfs.Open("/frames/missing.png"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_Glob(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.WriteFile("/frames/0002.png", nil)
	mfs.WriteFile("/frames/0001.png", nil)
	mfs.WriteFile("/frames/notes.txt", nil)

	matches, err := mfs.Glob("/frames/*.png")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	want := []string{"/frames/0001.png", "/frames/0002.png"}
	if len(matches) != len(want) || matches[0] != want[0] || matches[1] != want[1] {
		t.Errorf("Glob = %v, want %v", matches, want)
	}

	if got := mfs.Files(); len(got) != 3 {
		t.Errorf("Files() = %v, want 3 entries", got)
	}
}

func TestMemoryFileSystem_DataIsolation(t *testing.T) {
	mfs := NewMemoryFileSystem()
	original := []byte("original")
	mfs.WriteFile("/data.txt", original)
	original[0] = 'X'

	data, _ := mfs.ReadFile("/data.txt")
	if string(data) != "original" {
		t.Errorf("stored data was aliased: %q", data)
	}
	data[0] = 'Y'
	again, _ := mfs.ReadFile("/data.txt")
	if string(again) != "original" {
		t.Errorf("returned data was aliased: %q", again)
	}
}
