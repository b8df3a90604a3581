package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
	"github.com/propinsights/property-insights/internal/core/ports"
)

type ListingService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewListingService(repo ports.PropertyRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{repo: repo, logger: logger}
}

// ListProperties returns every persisted property. An empty relation yields
// an empty slice.
func (s *ListingService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	props, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list properties")
		return nil, err
	}
	return props, nil
}

// CreateProperty validates input before touching the data store, then
// persists the property in a single transaction and returns the full row.
func (s *ListingService) CreateProperty(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	if strings.TrimSpace(in.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", domain.ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrValidation)
	}

	p, err := s.repo.Insert(ctx, in)
	if err != nil {
		s.logger.Error().Err(err).Str("address", in.Address).Msg("failed to create property")
		return nil, err
	}

	s.logger.Info().Int("id", p.ID).Str("address", p.Address).Msg("property created")
	return p, nil
}

// AnalyticsSummary computes the listing analytics in one logical read. A
// relation with zero rows reports ErrNoData rather than an empty summary.
func (s *ListingService) AnalyticsSummary(ctx context.Context) (*ports.AnalyticsSummaryResult, error) {
	agg, err := s.repo.Aggregate(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to aggregate properties")
		return nil, err
	}
	if agg.TotalProperties == 0 {
		return nil, domain.ErrNoData
	}

	return &ports.AnalyticsSummaryResult{
		TotalProperties:    agg.TotalProperties,
		AveragePrice:       formatAveragePrice(agg.TotalProperties, agg.AveragePrice),
		PropertiesByRegion: agg.ByRegion,
	}, nil
}
