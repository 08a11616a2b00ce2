package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gazecat/internal/catalog"
	"gazecat/internal/config"
	"gazecat/internal/scanner"
	"gazecat/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [root...]",
		Short: "Follow recording roots and catalog new recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if err := runPreflight(cmd, cfg, args); err != nil {
					return err
				}

				logger, err := ctx.newLogger(cfg)
				if err != nil {
					return fmt.Errorf("setup logging: %w", err)
				}

				s, err := scanner.New(cfg, store, logger)
				if err != nil {
					return err
				}
				watcher, err := watch.New(cfg, s, logger)
				if err != nil {
					return err
				}

				runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				if cfg.Watch.Devices {
					monitor := watch.NewDeviceMonitor(logger, nil)
					if err := monitor.Start(runCtx); err != nil {
						return err
					}
					defer monitor.Stop()
				}

				if err := watcher.Run(runCtx, args); err != nil && !errors.Is(err, context.Canceled) {
					return err
				}
				return nil
			})
		},
	}
}
