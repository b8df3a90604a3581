package ports

import (
	"context"

	"github.com/propinsights/property-insights/internal/core/domain"
)

// AnalyticsAggregate is the raw aggregate read over the properties relation:
// total row count, arithmetic mean of price, and per-region counts with
// NULL-region rows excluded from the map.
type AnalyticsAggregate struct {
	TotalProperties int
	AveragePrice    float64
	ByRegion        map[string]int
}

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	// ListAll returns every row, order backend-determined. An empty
	// relation yields an empty slice, not an error.
	ListAll(ctx context.Context) ([]domain.Property, error)

	// Insert persists a new property in a single transaction and returns
	// the full row including the assigned id.
	Insert(ctx context.Context, in CreatePropertyInput) (*domain.Property, error)

	// Aggregate computes the analytics summary inputs in one logical read.
	Aggregate(ctx context.Context) (*AnalyticsAggregate, error)

	// CountByRegion groups non-null-region rows by region, ordered by
	// count descending. Ties are backend-determined.
	CountByRegion(ctx context.Context) ([]domain.RegionCount, error)
}
