package ports

import (
	"context"

	"github.com/propinsights/property-insights/internal/core/domain"
)

// CreatePropertyInput carries the data needed to create a property.
// Type and Region stay nil when the caller omitted them.
type CreatePropertyInput struct {
	Address string
	Price   int
	Type    *string
	Region  *string
}

// AnalyticsSummaryResult is returned by AnalyticsSummary. AveragePrice is
// pre-formatted with thousands grouping and two decimals (e.g. "1,500,000.00").
type AnalyticsSummaryResult struct {
	TotalProperties    int
	AveragePrice       string
	PropertiesByRegion map[string]int
}

// ListingService defines the use-case operations of the listing API.
type ListingService interface {
	ListProperties(ctx context.Context) ([]domain.Property, error)
	CreateProperty(ctx context.Context, in CreatePropertyInput) (*domain.Property, error)
	AnalyticsSummary(ctx context.Context) (*AnalyticsSummaryResult, error)
}
