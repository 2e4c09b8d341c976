// Package metrics exposes Prometheus counters for daemon mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	Runs            *prometheus.CounterVec
	ArchivesCreated *prometheus.CounterVec
	FilesDeleted    *prometheus.CounterVec
	RunDuration     prometheus.Histogram
}

// New creates the metric set on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekeep_runs_total",
			Help: "Archive runs, by group and outcome.",
		}, []string{"group", "outcome"}),
		ArchivesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekeep_archives_created_total",
			Help: "New archive files created, by group.",
		}, []string{"group"}),
		FilesDeleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekeep_files_deleted_total",
			Help: "Orphaned archive files deleted, by group.",
		}, []string{"group"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agekeep_run_duration_seconds",
			Help:    "Duration of archive runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler serves the /metrics endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
