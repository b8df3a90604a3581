package ports

import (
	"context"

	"github.com/propinsights/property-insights/internal/core/domain"
)

// ReportingService defines the read-only aggregate operations of the
// independently deployed reporting API.
type ReportingService interface {
	PropertySummaryByRegion(ctx context.Context) ([]domain.RegionCount, error)
}
