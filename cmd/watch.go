package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/fanc/internal/observability"
	"github.com/arnavsurve/fanc/internal/watcher"
)

func newWatchCmd(root *rootOptions) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-check sources whenever they change",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg := root.cfg
			ctx := cmd.Context()

			if metricsAddr == "" {
				metricsAddr = cfg.Metrics.Address
			}
			if metricsAddr != "" {
				srv := observability.NewServer(metricsAddr)
				if err := srv.Start(ctx); err != nil {
					return fmt.Errorf("start metrics server: %w", err)
				}
				defer func() {
					stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Stop(stopCtx)
				}()
			}

			r := newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
			r.showNames = true

			files, err := collectSources(args, cfg)
			if err != nil {
				return err
			}
			failed := r.checkFiles(ctx, files)
			slog.Info("initial check complete", "files", len(files), "failed", failed)

			w, err := watcher.NewWatcher(watcher.Options{
				Extension:    cfg.Source.Extension,
				Debounce:     cfg.Watch.Debounce,
				MinInterval:  cfg.Watch.MinInterval,
				ExcludeDirs:  cfg.Watch.ExcludeDirs,
				ExcludeFiles: cfg.Watch.ExcludeFiles,
			}, func(ctx context.Context, paths []string) {
				failed := r.checkFiles(ctx, paths)
				slog.Info("re-checked", "files", len(paths), "failed", failed)
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			if err := w.Watch(ctx, args); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			slog.Info("watching for changes", "paths", args)

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics.address)")
	return cmd
}
