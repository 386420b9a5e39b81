// Package fs provides the filesystem abstraction the task core runs against.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the core needs
//   - [Real]: production implementation using the [os] package
//   - [Mem]: in-memory implementation for tests
//
// The interface is deliberately narrow: the core only ever reads whole
// files, writes whole files, lists directories, and checks existence.
package fs

import (
	"os"
)

// FS defines the filesystem operations used by the task core.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Mem]: testing use, keeps everything in memory
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so a crash never leaves a partial write.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// ReadDir reads a directory and returns its entries sorted by name.
	// See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	// No error if the directory already exists.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	// Returns [os.ErrNotExist] if the file doesn't exist.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error
}
