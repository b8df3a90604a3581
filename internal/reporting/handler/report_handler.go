package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propinsights/property-insights/internal/core/ports"
)

const livenessMessage = "Reporting Service is online."

// regionSummaryResponse is one wire row of GET /reporting/property-summary.
type regionSummaryResponse struct {
	Region        string `json:"region"`
	PropertyCount int    `json:"property_count"`
}

// ReportHandler handles HTTP requests for the reporting service.
type ReportHandler struct {
	service ports.ReportingService
}

func NewReportHandler(service ports.ReportingService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Home handles GET /reporting with a fixed liveness string. The router's
// health check probes this endpoint.
func (h *ReportHandler) Home(c echo.Context) error {
	return c.String(http.StatusOK, livenessMessage)
}

// PropertySummary handles GET /reporting/property-summary.
func (h *ReportHandler) PropertySummary(c echo.Context) error {
	summary, err := h.service.PropertySummaryByRegion(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]regionSummaryResponse, 0, len(summary))
	for _, rc := range summary {
		resp = append(resp, regionSummaryResponse{
			Region:        rc.Region,
			PropertyCount: rc.PropertyCount,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
