package fs

import (
	"context"
	"os"
)

// OSFS is the concrete FS backed by the local OS filesystem. Platform
// details (inode extraction, advisory locking) live in build-tagged files.
type OSFS struct{}

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:  path,
		Size:  st.Size(),
		MTime: st.ModTime(),
		Inode: inodeOf(st),
	}, nil
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OSFS) CopyFile(ctx context.Context, src, dst string) error {
	return copyWithRetry(ctx, o, src, dst)
}

func (o *OSFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return writeFileAtomic(path, data, perm)
}

func (o *OSFS) Lock(path string) (func() error, error) {
	return lockFile(path)
}
