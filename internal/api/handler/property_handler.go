package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propinsights/property-insights/internal/api/metrics"
	"github.com/propinsights/property-insights/internal/core/domain"
	"github.com/propinsights/property-insights/internal/core/ports"
)

const welcomeMessage = "Welcome to the Property Insights API!"

// PropertyHandler handles HTTP requests for property operations.
type PropertyHandler struct {
	service ports.ListingService
}

func NewPropertyHandler(service ports.ListingService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// Home handles GET / with a plain-text welcome. Also serves as the probe
// target for the router's health check of this service.
func (h *PropertyHandler) Home(c echo.Context) error {
	return c.String(http.StatusOK, welcomeMessage)
}

// List handles GET /api/properties.
func (h *PropertyHandler) List(c echo.Context) error {
	props, err := h.service.ListProperties(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		resp = append(resp, toPropertyResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/properties.
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	p, err := h.service.CreateProperty(c.Request().Context(), ports.CreatePropertyInput{
		Address: req.Address,
		Price:   *req.Price,
		Type:    req.Type,
		Region:  req.Region,
	})
	if err != nil {
		return err
	}

	metrics.PropertiesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toPropertyResponse(*p))
}

// Summary handles GET /api/analytics/summary.
func (h *PropertyHandler) Summary(c echo.Context) error {
	summary, err := h.service.AnalyticsSummary(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, analyticsSummaryResponse{
		TotalProperties:    summary.TotalProperties,
		AveragePrice:       summary.AveragePrice,
		PropertiesByRegion: summary.PropertiesByRegion,
	})
}

func toPropertyResponse(p domain.Property) propertyResponse {
	return propertyResponse{
		ID:      p.ID,
		Address: p.Address,
		Price:   p.Price,
		Type:    p.Type,
		Region:  p.Region,
	}
}
