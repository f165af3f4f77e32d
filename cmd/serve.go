package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"reflectometry/internal/api"
	"reflectometry/internal/api/handler/v1handler"
	"reflectometry/internal/config"
	"reflectometry/internal/fitjob"
	"reflectometry/internal/worker"
	"reflectometry/pkg/logger"
	"reflectometry/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, svc fitjob.Service, mp metric.MeterProvider) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps:          v1handler.Deps{Service: svc},
		MeterProvider: mp,
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background fit workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			mp, err := metrics.NewMeterProvider(prometheus.DefaultRegisterer)
			if err != nil {
				logger.Fatal(ctx, "could not create meter provider", zap.Error(err))
			}
			calcMetrics, err := metrics.NewCalculator(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create calculator metrics", zap.Error(err))
			}
			fitMetrics, err := metrics.NewFits(mp)
			if err != nil {
				logger.Fatal(ctx, "could not create fit metrics", zap.Error(err))
			}

			opts, err := fitjob.NewOptions(cfg)
			if err != nil {
				logger.Fatal(ctx, "invalid fit configuration", zap.Error(err))
			}
			opts.Calculator = calcMetrics
			opts.Runs = fitMetrics

			pg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			svc := fitjob.New(pg, opts)

			riverClient, err := worker.Start(ctx, pg.Pool, svc, worker.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not start fit workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, svc, mp)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping fit workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop fit workers", zap.Error(err))
			}
			if err := mp.Shutdown(shutdownCtx); err != nil {
				logger.Warn(shutdownCtx, "could not shut down meter provider", zap.Error(err))
			}
		},
	}

	return cmd
}
