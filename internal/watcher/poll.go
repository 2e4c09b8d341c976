package watcher

import (
	"context"
	"time"
)

// startPolling checks the target on a fixed interval.
func (w *Watcher) startPolling(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect()
		}
	}
}
