package fs

import (
	"context"
	"fmt"
	"io"
	"os"
)

// implements file copying with retry and source-change detection. A target
// that is rewritten while being archived would yield a torn copy, so the
// copy aborts if the source changes mid-flight.

func copyWithRetry(ctx context.Context, f FS, src, dst string) error {
	orig, err := f.Stat(src)
	if err != nil {
		return err
	}

	return retry(ctx, "copy", func() error {
		now, err := f.Stat(src)
		if err != nil {
			return err
		}

		if sourceChanged(orig, now) {
			return fmt.Errorf("source changed during copy")
		}

		return copyOnce(src, dst)
	})
}

func sourceChanged(orig, now FileInfo) bool {
	if now.Inode != 0 && orig.Inode != 0 && now.Inode != orig.Inode {
		return true
	}
	if now.MTime.After(orig.MTime) {
		return true
	}
	if now.Size != orig.Size {
		return true
	}
	return false
}

func copyOnce(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}
