//go:build unix

package fs

import (
	"os"
	"syscall"
)

// extracts the inode from syscall.Stat_t on Unix. Inode changes are how a
// replaced-under-us target file is detected during copy.

func inodeOf(info os.FileInfo) uint64 {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return st.Ino
}
