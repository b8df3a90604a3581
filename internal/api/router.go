package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/api/handler"
	"github.com/propinsights/property-insights/internal/core/ports"
)

// NewRouter builds and returns the Echo instance for the listing service
// with all routes registered.
func NewRouter(service ports.ListingService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Per-instance registry so rebuilding the router (tests included) never
	// double-registers the HTTP metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "listing",
		Registerer: httpMetrics,
	}))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	propertyHandler := handler.NewPropertyHandler(service)
	healthHandler := handler.NewHealthHandler()

	// --- Routes ---
	e.GET("/", propertyHandler.Home)
	e.GET("/api/properties", propertyHandler.List)
	e.POST("/api/properties", propertyHandler.Create)
	e.GET("/api/analytics/summary", propertyHandler.Summary)

	// --- Operational endpoints (not exposed through the router) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	return e
}
