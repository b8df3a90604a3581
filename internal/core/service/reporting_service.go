package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
	"github.com/propinsights/property-insights/internal/core/ports"
)

// ReportingService serves the read-only aggregate view over the same
// relation the listing service writes to.
type ReportingService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewReportingService(repo ports.PropertyRepository, logger zerolog.Logger) *ReportingService {
	return &ReportingService{repo: repo, logger: logger}
}

// PropertySummaryByRegion groups non-null-region rows by region, ordered by
// count descending. Rows without a region never appear in the result.
func (s *ReportingService) PropertySummaryByRegion(ctx context.Context) ([]domain.RegionCount, error) {
	summary, err := s.repo.CountByRegion(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch region summary")
		return nil, err
	}
	return summary, nil
}
