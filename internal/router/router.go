// Package router implements the path-routing load balancer that fronts the
// listing and reporting services. Requests are dispatched by URL prefix;
// traffic is never forwarded to a target the prober considers unhealthy.
package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// NewRouter builds the Echo instance with the routing rules, highest
// precedence first:
//  1. "/" (exact) and "/api/*" forward to the listing service.
//  2. "/reporting" and "/reporting/*" forward to the reporting service.
//  3. Everything else is answered with a plain-text 404 by the router itself.
func NewRouter(listing, reporting *Target, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// Per-instance registry so rebuilding the router (tests included) never
	// double-registers the HTTP metrics.
	httpMetrics := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "router",
		Registerer: httpMetrics,
	}))

	e.Any("/", forward(listing))
	e.Any("/api/*", forward(listing))
	e.Any("/reporting", forward(reporting))
	e.Any("/reporting/*", forward(reporting))

	e.RouteNotFound("/*", func(c echo.Context) error {
		unmatchedRequestsTotal.Inc()
		return c.String(http.StatusNotFound, "404: no route matched "+c.Request().URL.Path)
	})

	e.GET("/router/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, httpMetrics},
	}))

	return e
}

// forward proxies the request to t, or fails at the router when t is
// unhealthy.
func forward(t *Target) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !t.Healthy() {
			return c.String(http.StatusServiceUnavailable, "service unavailable: "+t.Name())
		}
		t.proxy.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
