// Package config defines the daemon-mode configuration: the set of tracked
// targets and how each one is triggered.
package config

import "time"

type Config struct {
	// Destination is the default archive directory for all targets.
	Destination string `yaml:"destination"`
	// Tracker is the default tracker file path. Empty resolves to
	// .archive-tracker inside each target's destination.
	Tracker string `yaml:"tracker"`
	// Copies is the default per-period copy count for all targets.
	Copies int `yaml:"copies"`
	// MetricsAddr exposes Prometheus metrics when set, e.g. ":9184".
	MetricsAddr string `yaml:"metricsAddr"`

	Logging LoggingConfig  `yaml:"logging"`
	Watch   WatchConfig    `yaml:"watch"`
	Targets []TargetConfig `yaml:"targets"`
}

// TargetConfig is one tracked target. A target runs on its cron schedule,
// when its file changes (watch mode), or both.
type TargetConfig struct {
	File        string `yaml:"file"`
	Group       string `yaml:"group"`
	New         bool   `yaml:"new"`
	Destination string `yaml:"destination"`
	Tracker     string `yaml:"tracker"`
	Ext         string `yaml:"ext"`
	Copies      int    `yaml:"copies"`
	MinSize     int64  `yaml:"minSize"`
	Schedule    string `yaml:"schedule"` // cron expression
	Watch       bool   `yaml:"watch"`
}

type WatchConfig struct {
	Mode            string        `yaml:"mode"`           // "auto", "poll", "fsnotify"
	PollInterval    time.Duration `yaml:"pollInterval"`   // e.g. 5s
	DebounceWindow  time.Duration `yaml:"debounceWindow"` // e.g. 500ms
	StabilityWindow time.Duration `yaml:"stabilityWindow"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "text"
}
