package fs

import (
	"context"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temporary file in the same directory,
// syncs it, then renames it over path. Readers either see the old content or
// the new content, never a partial write.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := renameWithRetry(context.Background(), tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// renameWithRetry wraps os.Rename with retry logic for transient errors.
func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
