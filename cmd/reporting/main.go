package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/propinsights/property-insights/internal/core/service"
	"github.com/propinsights/property-insights/internal/infrastructure/db/postgres"
	"github.com/propinsights/property-insights/internal/pkg/config"
	"github.com/propinsights/property-insights/internal/reporting"
	"github.com/propinsights/property-insights/internal/secrets"
	"github.com/propinsights/property-insights/pkg/logger"
)

const defaultPort = "8080"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Service: "reporting",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	resolver := secrets.NewResolver(secrets.Config{
		SecretARN: cfg.Secrets.PasswordSecretARN,
		Region:    cfg.Secrets.Region,
	}, log)

	gateway := postgres.NewGateway(postgres.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		Username: cfg.Database.Username,
		SSLMode:  cfg.Database.SSLMode,
	}, resolver, log)

	// The listing service owns schema bootstrap; reporting only reads.
	repo := postgres.NewPropertyRepository(gateway, log)
	reportingService := service.NewReportingService(repo, log)

	e := reporting.NewRouter(reportingService, log)

	port := cfg.Port
	if port == "" {
		port = defaultPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("reporting server failed")
		}
	}()
	log.Info().Str("port", port).Msg("reporting service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
