// Package reporting wires the HTTP surface of the independently deployed
// reporting service.
package reporting

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/api"
	"github.com/propinsights/property-insights/internal/core/ports"
	"github.com/propinsights/property-insights/internal/reporting/handler"
)

// NewRouter builds and returns the Echo instance for the reporting service.
func NewRouter(service ports.ReportingService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Per-instance registry so rebuilding the router (tests included) never
	// double-registers the HTTP metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "reporting",
		Registerer: httpMetrics,
	}))

	// Same taxonomy, same envelope as the listing service.
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	reportHandler := handler.NewReportHandler(service)

	e.GET("/reporting", reportHandler.Home)
	e.GET("/reporting/property-summary", reportHandler.PropertySummary)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	return e
}
