package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemWriteRequiresParentDir(t *testing.T) {
	t.Parallel()

	m := NewMem()

	err := m.WriteFileAtomic("/tasks/a.md", []byte("x"), 0o644)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist for missing parent, got %v", err)
	}

	mkErr := m.MkdirAll("/tasks", 0o755)
	if mkErr != nil {
		t.Fatalf("MkdirAll failed: %v", mkErr)
	}

	writeErr := m.WriteFileAtomic("/tasks/a.md", []byte("x"), 0o644)
	if writeErr != nil {
		t.Fatalf("write after mkdir failed: %v", writeErr)
	}

	data, readErr := m.ReadFile("/tasks/a.md")
	if readErr != nil {
		t.Fatalf("ReadFile failed: %v", readErr)
	}

	if string(data) != "x" {
		t.Errorf("ReadFile = %q, want %q", data, "x")
	}
}

func TestMemReadDirSorted(t *testing.T) {
	t.Parallel()

	m := NewMem()

	if err := m.MkdirAll("/tasks/sub", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	for _, name := range []string{"zeta.md", "alpha.md", "mid.md"} {
		if err := m.WriteFileAtomic(filepath.Join("/tasks", name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s failed: %v", name, err)
		}
	}

	entries, err := m.ReadDir("/tasks")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	want := []string{"alpha.md", "mid.md", "sub", "zeta.md"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir names = %v, want %v", names, want)
	}

	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ReadDir[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	for _, e := range entries {
		if e.Name() == "sub" && !e.IsDir() {
			t.Errorf("sub should be a directory entry")
		}
	}
}

func TestMemRemove(t *testing.T) {
	t.Parallel()

	m := NewMem()

	if err := m.MkdirAll("/tasks", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if err := m.WriteFileAtomic("/tasks/a.md", []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Non-empty directory refuses removal.
	if err := m.Remove("/tasks"); err == nil {
		t.Fatal("expected error removing non-empty directory")
	}

	if err := m.Remove("/tasks/a.md"); err != nil {
		t.Fatalf("Remove file failed: %v", err)
	}

	exists, err := m.Exists("/tasks/a.md")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}

	if exists {
		t.Error("file should not exist after Remove")
	}

	removeErr := m.Remove("/tasks/a.md")
	if !errors.Is(removeErr, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist for double remove, got %v", removeErr)
	}
}

func TestMemStat(t *testing.T) {
	t.Parallel()

	m := NewMem()

	if err := m.MkdirAll("/d", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if err := m.WriteFileAtomic("/d/f.md", []byte("body"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	info, err := m.Stat("/d/f.md")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}

	if info.IsDir() {
		t.Error("file stat reports directory")
	}

	if info.Size() != 4 {
		t.Errorf("Size = %d, want 4", info.Size())
	}

	_, statErr := m.Stat("/d/missing.md")
	if !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", statErr)
	}
}
