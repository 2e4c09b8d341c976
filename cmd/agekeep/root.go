package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agekeep/agekeep/internal/logging"
)

var (
	verbose   bool
	debug     bool
	quiet     bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "agekeep",
	Short: "Keep archive copies of a file from different time periods",
	Long: `Agekeep archives copies of a target file and keeps a set of them from
different time periods, like the last hour, day, week, month, and year.
Each run decides which existing copies still satisfy the retention policy,
creates a fresh copy when one is needed, and deletes copies that no longer
serve any period.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log informational messages")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "log debug messages")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// newLogger builds the logger for one command invocation from the global
// verbosity flags.
func newLogger() logging.Logger {
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case verbose:
		level = slog.LevelInfo
	case quiet:
		level = slog.LevelError
	}
	return logging.New(logging.Options{Level: level, Format: logFormat})
}
