package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/app"
	"github.com/paw-chain/pawswap/app/health"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the HTTP API together with the metrics and health servers
// until interrupted.
func ServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the pool API, Prometheus metrics and health checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return opts.withApp(func(pawApp *app.App) error {
				return serve(ctx, opts.config, pawApp, opts.logger)
			})
		},
	}
}

func serve(ctx context.Context, cfg app.Config, pawApp *app.App, logger log.Logger) error {
	apiCfg := api.DefaultConfig()
	apiCfg.Address = cfg.API.Address
	apiCfg.JWTSecret = []byte(cfg.API.JWTSecret)
	apiCfg.AdminSecret = cfg.API.AdminSecret
	apiCfg.CORSOrigins = cfg.API.CORSOrigins
	apiCfg.RateLimitRPS = cfg.API.RateLimitRPS

	server, err := api.NewServer(pawApp, pawApp.PoolKeeper, pawApp.TokenKeeper, apiCfg, logger)
	if err != nil {
		return err
	}

	healthCfg := health.DefaultConfig()
	healthCfg.CORSOrigins = cfg.API.CORSOrigins
	checker, err := health.NewChecker(logger, healthCfg, pawApp)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Start(gCtx) })

	if cfg.Telemetry.MetricsAddress != "" {
		g.Go(func() error {
			return listenAndServe(gCtx, newMetricsServer(cfg.Telemetry.MetricsAddress), logger.With("server", "metrics"))
		})
	}
	if cfg.Telemetry.HealthAddress != "" {
		g.Go(func() error {
			srv := &http.Server{
				Addr:              cfg.Telemetry.HealthAddress,
				Handler:           checker.Handler(healthCfg),
				ReadHeaderTimeout: 5 * time.Second,
			}
			return listenAndServe(gCtx, srv, logger.With("server", "health"))
		})
	}

	err = g.Wait()
	logger.Info("node stopped", "version", pawApp.LastCommitID().Version)
	return err
}

// newMetricsServer exposes the default Prometheus registry, which the pool
// keeper registers its collectors with.
func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// listenAndServe runs srv until ctx is done, then shuts it down.
func listenAndServe(ctx context.Context, srv *http.Server, logger log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
