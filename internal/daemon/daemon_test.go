package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agekeep/agekeep/internal/archiver"
	"github.com/agekeep/agekeep/internal/config"
	"github.com/agekeep/agekeep/internal/logging"
)

func TestRunTargetArchives(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))

	cfg := &config.Config{
		Targets: []config.TargetConfig{
			{File: target, New: true, Schedule: "@hourly"},
		},
	}

	d := New(cfg, logging.Nop())
	d.runTarget(context.Background(), cfg.Targets[0])

	_, err := os.Stat(filepath.Join(dir, archiver.DefaultTrackerName))
	assert.NoError(t, err, "archive run should have persisted a tracker")
}

func TestRunRejectsInvalidSchedule(t *testing.T) {
	cfg := &config.Config{
		Targets: []config.TargetConfig{
			{File: "/tmp/data.txt", Schedule: "not a cron expression"},
		},
	}

	err := New(cfg, logging.Nop()).Run(context.Background())
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		Targets: []config.TargetConfig{
			{File: "/tmp/data.txt", Schedule: "@hourly"},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(cfg, logging.Nop()).Run(ctx)
	}()

	cancel()
	require.NoError(t, <-done)
}

func TestTargetKey(t *testing.T) {
	assert.Equal(t, "grp", targetKey(config.TargetConfig{File: "/a", Group: "grp"}))
	assert.Equal(t, "/a", targetKey(config.TargetConfig{File: "/a"}))
}
