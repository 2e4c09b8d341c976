// Package fs defines the filesystem abstraction used by agekeep. Everything
// that touches disk during an archive run (target stats, archive copies,
// orphan removal, tracker persistence, run locking) goes through the FS
// interface so it can be faked in tests.
package fs

import (
	"context"
	"os"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Inode uint64
}

type FS interface {
	Stat(path string) (FileInfo, error)
	CopyFile(ctx context.Context, src, dst string) error
	Remove(path string) error
	MkdirAll(path string) error

	// WriteFileAtomic persists data via a temporary file and an atomic
	// rename, so a crash mid-write never leaves path truncated or corrupt.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Lock takes an advisory exclusive lock on path, creating the file if
	// needed. The returned function releases it. Concurrent runs against
	// the same tracker serialize on this.
	Lock(path string) (release func() error, err error)
}
