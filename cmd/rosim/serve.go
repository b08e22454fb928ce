package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/osmoflow/rosim/internal/registry"
	"github.com/osmoflow/rosim/internal/server"
	"github.com/osmoflow/rosim/internal/transport"
	"github.com/osmoflow/rosim/internal/vessel"
	"github.com/osmoflow/rosim/pkg/log"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}

			store, err := openHistory()
			if err != nil {
				return err
			}
			defer closeHistory(store)

			sim := vessel.New(reg, transport.DefaultParams(), logger)
			h := server.NewHandler(sim, reg, store, logger)

			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           server.New(h, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if cfg.Watch {
				watcher := registry.NewWatcher(reg, logger)
				go func() {
					if err := watcher.Run(ctx); err != nil {
						logger.Warn("catalog watcher stopped", log.Err(err))
					}
				}()
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening",
					log.String("addr", cfg.Listen),
					log.String("catalog", cfg.SpecsPath),
					log.String("history", cfg.HistoryDir))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Listen, "listen", cfg.Listen, "HTTP listen address")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the catalog when the file changes")

	return cmd
}
