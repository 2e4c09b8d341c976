package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agekeep/agekeep/internal/config"
	"github.com/agekeep/agekeep/internal/daemon"
	"github.com/agekeep/agekeep/internal/logging"
)

var runConfigFile string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run as a daemon, archiving configured targets on schedule or on change",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)

		// SIGHUP tears the daemon down and rebuilds it from a freshly
		// loaded config.
		for {
			cfg, err := config.Load(runConfigFile)
			if err != nil {
				return err
			}
			if cfg.Logging.Level != "" || cfg.Logging.Format != "" {
				log = logging.New(logging.Options{
					Level:  logging.ParseLevel(cfg.Logging.Level),
					Format: cfg.Logging.Format,
				})
			}

			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() {
				done <- daemon.New(cfg, log).Run(runCtx)
			}()

			select {
			case <-ctx.Done():
				cancel()
				<-done
				log.Info("shut down")
				return nil
			case <-hup:
				log.Info("reloading config", "path", runConfigFile)
				cancel()
				<-done
			case err := <-done:
				cancel()
				return err
			}
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigFile, "config", "agekeep.yaml", "config file path")
	rootCmd.AddCommand(runCmd)
}
