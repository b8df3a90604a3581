package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/api/metrics"
	"github.com/propinsights/property-insights/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the shared error taxonomy to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the mux, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoData):
		metrics.AnalyticsNoDataTotal.Inc()
		return http.StatusNotFound, "No property data available"
	case errors.Is(err, domain.ErrConfigMissing):
		metrics.DataStoreErrorsTotal.WithLabelValues("config_missing").Inc()
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, domain.ErrRetrievalFailed):
		metrics.DataStoreErrorsTotal.WithLabelValues("retrieval_failed").Inc()
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, domain.ErrConnectionUnavailable):
		metrics.DataStoreErrorsTotal.WithLabelValues("connection_unavailable").Inc()
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, domain.ErrQueryFailed):
		metrics.DataStoreErrorsTotal.WithLabelValues("query_failed").Inc()
		return http.StatusInternalServerError, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	metrics.DataStoreErrorsTotal.WithLabelValues("internal").Inc()
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
