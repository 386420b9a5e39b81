package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRealRoundTrip(t *testing.T) {
	t.Parallel()

	real := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "task.md")

	if err := real.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	if err := real.WriteFileAtomic(path, []byte("# hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := real.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != "# hello\n" {
		t.Errorf("ReadFile = %q", data)
	}

	exists, err := real.Exists(path)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true, nil", exists, err)
	}

	entries, err := real.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	if len(entries) != 1 || entries[0].Name() != "task.md" {
		t.Errorf("unexpected entries: %v", entries)
	}

	if err := real.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	exists, err = real.Exists(path)
	if err != nil || exists {
		t.Fatalf("Exists after remove = %v, %v; want false, nil", exists, err)
	}
}

func TestRealWriteAtomicNoPartialFile(t *testing.T) {
	t.Parallel()

	real := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "task.md")

	if err := real.WriteFileAtomic(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	if err := real.WriteFileAtomic(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if string(data) != "v2" {
		t.Errorf("content = %q, want %q", data, "v2")
	}

	// No leftover temp files from the atomic write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}

	if len(entries) != 1 {
		t.Errorf("expected only the target file, got %d entries", len(entries))
	}
}
