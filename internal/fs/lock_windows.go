//go:build windows

package fs

import "os"

// Windows has no flock. Creating the lock file still marks the run; mutual
// exclusion is only enforced on Unix (dev on Windows, run on Linux).
func lockFile(path string) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return f.Close, nil
}
