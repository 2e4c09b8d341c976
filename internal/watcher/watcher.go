// Package watcher monitors one target file and fires a callback when it has
// changed and settled, so the daemon can archive it right after it is
// rewritten.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/agekeep/agekeep/internal/config"
	"github.com/agekeep/agekeep/internal/fsprobe"
	"github.com/agekeep/agekeep/internal/logging"
)

// Watcher observes a single target file and invokes notify when it changes.
type Watcher struct {
	mu sync.Mutex

	dir       string
	name      string
	mode      string
	interval  time.Duration
	debounce  time.Duration
	stability time.Duration

	log    logging.Logger
	notify func()

	lastMod time.Time
}

// New creates a watcher for the file at path. notify runs on the watcher's
// goroutine; keep it cheap (the daemon just enqueues a job).
func New(path string, cfg config.WatchConfig, log logging.Logger, notify func()) *Watcher {
	return &Watcher{
		dir:       filepath.Dir(path),
		name:      filepath.Base(path),
		mode:      cfg.Mode,
		interval:  cfg.PollInterval,
		debounce:  cfg.DebounceWindow,
		stability: cfg.StabilityWindow,
		log:       log,
		notify:    notify,
	}
}

// Start blocks until ctx is done, watching with the configured strategy.
// Auto mode probes whether fsnotify delivers events for the target's
// directory and falls back to polling when it does not.
func (w *Watcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.startFsnotify(ctx)

	case "poll":
		w.startPolling(ctx)
		return nil

	case "auto":
		res := fsprobe.Probe(w.dir)
		if res.Supported {
			return w.startFsnotify(ctx)
		}
		w.log.Warn("fsnotify disabled, falling back to polling",
			"dir", w.dir, "reason", res.Reason)
		w.startPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown watch mode %q", w.mode)
	}
}
