package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Mem implements [FS] entirely in memory.
//
// It mirrors [Real] semantics closely enough for the task core: writes
// require the parent directory to exist, [Mem.ReadDir] returns entries
// sorted by name (like [os.ReadDir]), and missing paths surface
// [os.ErrNotExist]. A mutex guards all state so tests can share one
// instance freely.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewMem returns an empty in-memory filesystem containing only the root
// directory.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true, ".": true},
	}
}

func (m *Mem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.files[clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

func (m *Mem) WriteFileAtomic(path string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	parent := filepath.Dir(path)
	if !m.dirs[parent] {
		return &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	if m.dirs[path] {
		return &fs.PathError{Op: "open", Path: path, Err: fmt.Errorf("is a directory")}
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[path] = stored

	return nil
}

func (m *Mem) ReadDir(path string) ([]os.DirEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	if !m.dirs[path] {
		return nil, &fs.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	seen := make(map[string]bool)

	var entries []os.DirEntry

	for file := range m.files {
		if filepath.Dir(file) == path {
			name := filepath.Base(file)
			if !seen[name] {
				seen[name] = true

				entries = append(entries, memEntry{name: name, size: int64(len(m.files[file]))})
			}
		}
	}

	for dir := range m.dirs {
		if dir != path && filepath.Dir(dir) == path {
			name := filepath.Base(dir)
			if !seen[name] {
				seen[name] = true

				entries = append(entries, memEntry{name: name, dir: true})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	return entries, nil
}

func (m *Mem) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	if _, isFile := m.files[path]; isFile {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fmt.Errorf("not a directory")}
	}

	for dir := path; ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true

		if dir == filepath.Dir(dir) {
			break
		}
	}

	return nil
}

func (m *Mem) Stat(path string) (os.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	if data, ok := m.files[path]; ok {
		return memEntry{name: filepath.Base(path), size: int64(len(data))}, nil
	}

	if m.dirs[path] {
		return memEntry{name: filepath.Base(path), dir: true}, nil
	}

	return nil, &fs.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

func (m *Mem) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	if _, ok := m.files[path]; ok {
		return true, nil
	}

	return m.dirs[path], nil
}

func (m *Mem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = clean(path)

	if _, ok := m.files[path]; ok {
		delete(m.files, path)

		return nil
	}

	if m.dirs[path] {
		for file := range m.files {
			if strings.HasPrefix(file, path+string(filepath.Separator)) {
				return &fs.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")}
			}
		}

		for dir := range m.dirs {
			if dir != path && strings.HasPrefix(dir, path+string(filepath.Separator)) {
				return &fs.PathError{Op: "remove", Path: path, Err: fmt.Errorf("directory not empty")}
			}
		}

		delete(m.dirs, path)

		return nil
	}

	return &fs.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
}

func clean(path string) string {
	return filepath.Clean(path)
}

// memEntry backs both [os.DirEntry] and [os.FileInfo] for [Mem].
type memEntry struct {
	name string
	size int64
	dir  bool
}

func (e memEntry) Name() string { return e.name }

func (e memEntry) IsDir() bool { return e.dir }

func (e memEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}

	return 0
}

func (e memEntry) Info() (fs.FileInfo, error) { return e, nil }

func (e memEntry) Size() int64 { return e.size }

func (e memEntry) Mode() fs.FileMode {
	if e.dir {
		return fs.ModeDir | 0o755
	}

	return 0o644
}

func (e memEntry) ModTime() time.Time { return time.Time{} }

func (e memEntry) Sys() any { return nil }

// Compile-time interface checks.
var (
	_ FS          = (*Mem)(nil)
	_ os.DirEntry = memEntry{}
	_ os.FileInfo = memEntry{}
)
