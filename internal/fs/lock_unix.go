//go:build unix

package fs

import (
	"os"
	"syscall"
)

// lockFile takes a blocking advisory flock on path, creating it if needed.
// The lock file is left in place after release; only the lock itself is
// dropped.
func lockFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, err
	}

	release := func() error {
		defer f.Close()
		return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}
	return release, nil
}
