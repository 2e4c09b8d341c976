package watcher

import (
	"os"
	"path/filepath"
	"time"
)

// detect fires the callback if the target has been modified since the last
// trigger and its size has settled. Writers that stream the target out take
// a while; archiving a half-written file would store garbage.
func (w *Watcher) detect() {
	path := filepath.Join(w.dir, w.name)

	info, err := os.Stat(path)
	if err != nil {
		return
	}

	mod := info.ModTime()

	w.mu.Lock()
	last := w.lastMod
	w.mu.Unlock()

	if !mod.After(last) {
		return
	}

	if !w.isStable(path, info.Size()) {
		w.log.Debug("target still changing, skipping trigger", "file", path)
		return
	}

	w.mu.Lock()
	w.lastMod = mod
	w.mu.Unlock()

	w.log.Debug("target changed", "file", path, "modtime", mod)
	w.notify()
}

// isStable re-stats the target after the stability window and reports
// whether its size held still.
func (w *Watcher) isStable(path string, size int64) bool {
	time.Sleep(w.stability)

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() == size
}
