package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/draftboard/internal/adapters/http/api"
	"github.com/okian/draftboard/internal/adapters/http/swagger"
	"github.com/okian/draftboard/internal/adapters/repository"
	service "github.com/okian/draftboard/internal/app"
	"github.com/okian/draftboard/internal/config"
	"github.com/okian/draftboard/pkg/logger"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCommand(c *cli) *cobra.Command {
	var (
		addr    string
		refresh time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [season]",
		Short: "Build the board and serve it over a read-only HTTP API",
		Long: `Build the board for a season and serve it read-only.

Routes:
  GET /board?limit=N&pos=RB
  GET /players/{name}
  GET /healthz
  GET /metrics
  GET /openapi.yaml, /api-docs

With --refresh the pipeline re-runs on that interval and the served board is
swapped atomically. A failed refresh keeps the previous board.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			season, err := resolveSeason(args, c.cfg.Season)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}

			pipeline := service.FromConfig(ctx, c.cfg, c.log)
			store := repository.NewBoardStore()
			if err := reload(ctx, pipeline, store, season); err != nil {
				return err
			}
			if refresh > 0 {
				go refreshLoop(ctx, c.log, refresh, func(ctx context.Context) error {
					return reload(ctx, pipeline, store, season)
				})
			}
			return serve(ctx, c.log, newServer(ctx, c.cfg, store))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to the configured addr)")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "Re-run the pipeline on this interval (0 disables)")
	return cmd
}

// reload runs the pipeline and publishes the board.
func reload(ctx context.Context, p *service.Pipeline, store repository.Store, season int) error {
	res, err := p.Run(ctx, season)
	if err != nil {
		return err
	}
	return store.Load(ctx, res.Board)
}

// refreshLoop calls fn every interval until ctx is done.
func refreshLoop(ctx context.Context, log logger.Logger, interval time.Duration, fn func(context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Warn(ctx, "board refresh failed; keeping previous board", logger.Error(err))
			}
		}
	}
}

func newServer(ctx context.Context, cfg *config.Config, store repository.Store) *http.Server {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(store, cfg.MaxBoardLimit).Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// serve runs srv until ctx is canceled, then shuts it down gracefully.
func serve(ctx context.Context, log logger.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info(ctx, "server stopped")
	return nil
}
