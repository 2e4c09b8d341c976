// Package logging provides the small structured logger interface used across
// the application.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the logging surface the rest of the code depends on. Arguments
// are slog-style alternating key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Options configures a logger.
type Options struct {
	Level  slog.Level
	Format string // "text" or "json"
	Writer io.Writer
}

// New builds a slog-backed Logger.
func New(opts Options) Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return &slogLogger{s: slog.New(h)}
}

type slogLogger struct {
	s *slog.Logger
}

func (l *slogLogger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.s.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.s.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.s.Error(msg, args...) }

// ParseLevel maps a config level name to a slog level. Unknown names fall
// back to warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Nop returns a logger that discards everything. Meant for tests.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
