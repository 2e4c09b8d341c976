package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agekeep/agekeep/internal/config"
	"github.com/agekeep/agekeep/internal/logging"
)

func testWatchConfig(mode string) config.WatchConfig {
	return config.WatchConfig{
		Mode:            mode,
		PollInterval:    20 * time.Millisecond,
		DebounceWindow:  20 * time.Millisecond,
		StabilityWindow: 10 * time.Millisecond,
	}
}

func TestPollingDetectsChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))

	fired := make(chan struct{}, 1)
	w := New(target, testWatchConfig("poll"), logging.Nop(), func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired for existing file")
	}
}

func TestPollingIgnoresUnchangedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))

	fired := make(chan struct{}, 8)
	w := New(target, testWatchConfig("poll"), logging.Nop(), func() {
		fired <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	// First detection for the existing file.
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never fired")
	}

	// With no further writes there must be no further triggers.
	select {
	case <-fired:
		t.Fatal("watcher fired again for an unchanged file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestUnknownModeFails(t *testing.T) {
	w := New("/tmp/data.txt", testWatchConfig("telepathy"), logging.Nop(), func() {})
	require.Error(t, w.Start(context.Background()))
}
