// Package daemon runs agekeep as a long-lived process: targets are archived
// on cron schedules or when their files change, with all runs funneled
// through one worker loop.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/agekeep/agekeep/internal/archiver"
	"github.com/agekeep/agekeep/internal/config"
	"github.com/agekeep/agekeep/internal/logging"
	"github.com/agekeep/agekeep/internal/mailbox"
	"github.com/agekeep/agekeep/internal/metrics"
	"github.com/agekeep/agekeep/internal/watcher"
)

type job struct {
	target config.TargetConfig
}

// Daemon wires schedules, watchers, and the worker loop together.
type Daemon struct {
	cfg  *config.Config
	log  logging.Logger
	arch *archiver.Archiver
	mb   *mailbox.Mailbox[string, job]
	met  *metrics.Metrics
}

func New(cfg *config.Config, log logging.Logger) *Daemon {
	return &Daemon{
		cfg:  cfg,
		log:  log,
		arch: archiver.New(nil, log),
		mb:   mailbox.New[string, job](),
		met:  metrics.New(),
	}
}

// Run blocks until ctx is canceled. Triggers from cron and watchers enqueue
// jobs keyed by target, so a burst of triggers for one target collapses into
// a single run; the worker loop drains them sequentially because runs for
// different targets may share a tracker file.
func (d *Daemon) Run(ctx context.Context) error {
	for _, t := range d.cfg.Targets {
		if t.Schedule == "" {
			continue
		}
		if _, err := cron.ParseStandard(t.Schedule); err != nil {
			return fmt.Errorf("target %q: invalid schedule %q: %w", t.File, t.Schedule, err)
		}
	}

	var wg sync.WaitGroup

	if d.cfg.MetricsAddr != "" {
		d.serveMetrics(ctx, &wg)
	}

	c := cron.New()
	for _, t := range d.cfg.Targets {
		target := t
		key := targetKey(target)

		if target.Schedule != "" {
			_, err := c.AddFunc(target.Schedule, func() {
				d.mb.Put(key, job{target: target})
			})
			if err != nil {
				return err
			}
			d.log.Info("scheduled target", "file", target.File, "schedule", target.Schedule)
		}

		if target.Watch {
			w := watcher.New(target.File, d.cfg.Watch, d.log, func() {
				d.mb.Put(key, job{target: target})
			})
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := w.Start(ctx); err != nil {
					d.log.Error("watcher failed", "file", target.File, "error", err)
				}
			}()
			d.log.Info("watching target", "file", target.File)
		}
	}
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
		d.mb.Close()
	}()

	for {
		j, ok := d.mb.Take()
		if !ok {
			break
		}
		d.runTarget(ctx, j.target)
	}

	wg.Wait()
	d.log.Info("daemon stopped")
	return nil
}

// runTarget performs one archive cycle for a configured target.
func (d *Daemon) runTarget(ctx context.Context, t config.TargetConfig) {
	opts := archiver.Options{
		Target:      t.File,
		Group:       t.Group,
		New:         t.New,
		Destination: t.Destination,
		TrackerPath: t.Tracker,
		Ext:         t.Ext,
		Copies:      t.Copies,
		MinSize:     t.MinSize,
		Now:         time.Now().Unix(),
	}
	if opts.Destination == "" {
		opts.Destination = d.cfg.Destination
	}
	if opts.TrackerPath == "" {
		opts.TrackerPath = d.cfg.Tracker
	}
	if opts.Copies == 0 {
		opts.Copies = d.cfg.Copies
	}

	start := time.Now()
	res, err := d.arch.Run(ctx, opts)
	d.met.RunDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		d.met.Runs.WithLabelValues(targetKey(t), "error").Inc()
		d.log.Error("archive run failed", "file", t.File, "error", err)
		return
	}

	d.met.Runs.WithLabelValues(res.Group, "ok").Inc()
	if res.Created != "" {
		d.met.ArchivesCreated.WithLabelValues(res.Group).Inc()
	}
	d.met.FilesDeleted.WithLabelValues(res.Group).Add(float64(len(res.Deleted)))
	d.log.Info("archive run finished",
		"group", res.Group, "created", res.Created, "deleted", len(res.Deleted))
}

// serveMetrics runs the Prometheus endpoint until ctx is done.
func (d *Daemon) serveMetrics(ctx context.Context, wg *sync.WaitGroup) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.met.Handler())
	srv := &http.Server{Addr: d.cfg.MetricsAddr, Handler: mux}

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.log.Info("metrics listening", "addr", d.cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("metrics server failed", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// targetKey identifies a target in the mailbox and in metrics.
func targetKey(t config.TargetConfig) string {
	if t.Group != "" {
		return t.Group
	}
	return t.File
}
