package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// startFsnotify triggers detect() when fsnotify reports changes to the
// target. Events are debounced so a burst of writes collapses into one
// detection after the file goes quiet.
func (w *Watcher) startFsnotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and atomic writers replace
	// the file, which drops a watch placed on the file itself.
	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	resetCh := make(chan struct{}, 1)

	go func() {
		var t *time.Timer
		for {
			select {
			case <-ctx.Done():
				if t != nil {
					t.Stop()
				}
				return
			case <-resetCh:
				if t != nil {
					t.Stop()
				}
				t = time.AfterFunc(w.debounce, w.detect)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("fsnotify events channel closed", "dir", w.dir)
				return nil
			}

			if filepath.Base(ev.Name) != w.name {
				continue
			}
			w.log.Debug("fsnotify event", "name", ev.Name, "op", ev.Op.String())

			select {
			case resetCh <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
