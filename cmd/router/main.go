package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propinsights/property-insights/internal/pkg/config"
	"github.com/propinsights/property-insights/internal/router"
	"github.com/propinsights/property-insights/pkg/logger"
)

const defaultPort = "8000"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "router",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	listing, err := router.NewTarget("listing", cfg.Router.ListingTarget, "/", log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid listing target")
	}
	reporting, err := router.NewTarget("reporting", cfg.Router.ReportingTarget, "/reporting", log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid reporting target")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prober := router.NewProber(
		[]*router.Target{listing, reporting},
		cfg.Router.HealthCheckInterval,
		cfg.Router.HealthCheckTimeout,
		log,
	)
	go prober.Run(ctx)

	e := router.NewRouter(listing, reporting, log)

	port := cfg.Port
	if port == "" {
		port = defaultPort
	}

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("router server failed")
		}
	}()
	log.Info().
		Str("port", port).
		Str("listing_target", cfg.Router.ListingTarget).
		Str("reporting_target", cfg.Router.ReportingTarget).
		Msg("router started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
