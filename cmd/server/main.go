package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/transcriptapi/yt-transcript/internal/client"
	"github.com/transcriptapi/yt-transcript/internal/config"
	"github.com/transcriptapi/yt-transcript/internal/metrics"
	"github.com/transcriptapi/yt-transcript/internal/server"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("watch_domain", cfg.WatchDomain).
		Str("cache_provider", cfg.Cache.Provider).
		Str("server_address", cfg.Server.Address).
		Int("server_port", cfg.Server.Port).
		Msg("Starting YouTube transcript service")

	if cfg.Sentry.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Sentry initialization failed, continuing without crash reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ytClient, err := client.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create transcript client")
	}
	defer func() {
		if err := ytClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close transcript client")
		}
	}()

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	apiServer := server.NewHTTPServer(cfg, ytClient)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown API server")
		}
	}()

	logger.Info().Str("address", apiServer.Addr).Msg("Starting HTTP API server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to serve API")
	}

	logger.Info().Msg("Server stopped gracefully")
}
