package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.txt")

	f := New()
	require.NoError(t, f.WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, f.WriteFileAtomic(path, []byte("second"), 0o644))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	// No temporary files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "leftover temp file %s", e.Name())
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))

	f := New()
	require.NoError(t, f.CopyFile(context.Background(), src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	f := New()
	err := f.CopyFile(context.Background(), filepath.Join(dir, "nope.txt"), filepath.Join(dir, "dst.txt"))
	assert.Error(t, err)
}

func TestLockReleaseAndRelock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.lock")
	f := New()

	release, err := f.Lock(path)
	require.NoError(t, err)
	require.NoError(t, release())

	// The lock can be taken again after release.
	release, err = f.Lock(path)
	require.NoError(t, err)
	require.NoError(t, release())
}

func TestStatReportsSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))

	info, err := New().Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)
}
