package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
	"github.com/propinsights/property-insights/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubPropertyRepo struct {
	rows    []domain.Property
	nextID  int
	failErr error // if set, every operation returns this error
	inserts int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{nextID: 1}
}

func (r *stubPropertyRepo) ListAll(_ context.Context) ([]domain.Property, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	out := make([]domain.Property, len(r.rows))
	copy(out, r.rows)
	return out, nil
}

func (r *stubPropertyRepo) Insert(_ context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	r.inserts++
	p := domain.Property{
		ID:      r.nextID,
		Address: in.Address,
		Price:   in.Price,
		Type:    in.Type,
		Region:  in.Region,
	}
	r.nextID++
	r.rows = append(r.rows, p)
	return &p, nil
}

func (r *stubPropertyRepo) Aggregate(_ context.Context) (*ports.AnalyticsAggregate, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	agg := &ports.AnalyticsAggregate{ByRegion: make(map[string]int)}
	sum := 0
	for _, p := range r.rows {
		agg.TotalProperties++
		sum += p.Price
		if p.Region != nil {
			agg.ByRegion[*p.Region]++
		}
	}
	if agg.TotalProperties > 0 {
		agg.AveragePrice = float64(sum) / float64(agg.TotalProperties)
	}
	return agg, nil
}

func (r *stubPropertyRepo) CountByRegion(_ context.Context) ([]domain.RegionCount, error) {
	if r.failErr != nil {
		return nil, r.failErr
	}
	counts := make(map[string]int)
	for _, p := range r.rows {
		if p.Region != nil {
			counts[*p.Region]++
		}
	}
	out := []domain.RegionCount{}
	for region, n := range counts {
		out = append(out, domain.RegionCount{Region: region, PropertyCount: n})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func ptr(s string) *string { return &s }

func seedRow(repo *stubPropertyRepo, address string, price int, region *string) domain.Property {
	p, _ := repo.Insert(context.Background(), ports.CreatePropertyInput{
		Address: address,
		Price:   price,
		Region:  region,
	})
	return *p
}

// ---------------------------------------------------------------------------
// ListProperties
// ---------------------------------------------------------------------------

func TestListingService_List_ReturnsAllRows(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)
	seedRow(repo, "123 Green St, Sydney", 1200000, ptr("NSW"))
	seedRow(repo, "456 Blue Rd, Melbourne", 850000, ptr("VIC"))

	props, err := svc.ListProperties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(props) != 2 {
		t.Errorf("expected 2 properties, got %d", len(props))
	}
}

func TestListingService_List_EmptyRelationIsNotAnError(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)

	props, err := svc.ListProperties(context.Background())
	if err != nil {
		t.Fatalf("empty relation must not be an error, got %v", err)
	}
	if len(props) != 0 {
		t.Errorf("expected empty sequence, got %d rows", len(props))
	}
}

func TestListingService_List_RepoError(t *testing.T) {
	repo := newStubPropertyRepo()
	repo.failErr = domain.ErrConnectionUnavailable
	svc := NewListingService(repo, discardLogger)

	_, err := svc.ListProperties(context.Background())
	if !errors.Is(err, domain.ErrConnectionUnavailable) {
		t.Errorf("expected ErrConnectionUnavailable, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// CreateProperty
// ---------------------------------------------------------------------------

func TestListingService_Create_AssignsFreshID(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)

	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		p, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{
			Address: "1 Test St",
			Price:   500000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[p.ID] {
			t.Errorf("id %d assigned twice", p.ID)
		}
		seen[p.ID] = true
	}

	props, _ := svc.ListProperties(context.Background())
	if len(props) != 3 {
		t.Errorf("created rows must be visible via list, got %d", len(props))
	}
}

func TestListingService_Create_OptionalFieldsStayNil(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)

	p, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{
		Address: "1 Test St",
		Price:   500000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Type != nil {
		t.Errorf("expected nil type, got %v", *p.Type)
	}
	if p.Region != nil {
		t.Errorf("expected nil region, got %v", *p.Region)
	}
	if p.Address != "1 Test St" || p.Price != 500000 {
		t.Errorf("persisted row mismatch: %+v", p)
	}
}

func TestListingService_Create_ValidationBeforeDataStore(t *testing.T) {
	cases := []struct {
		name  string
		input ports.CreatePropertyInput
	}{
		{"empty address", ports.CreatePropertyInput{Address: "", Price: 100}},
		{"blank address", ports.CreatePropertyInput{Address: "   ", Price: 100}},
		{"negative price", ports.CreatePropertyInput{Address: "1 Test St", Price: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubPropertyRepo()
			svc := NewListingService(repo, discardLogger)

			_, err := svc.CreateProperty(context.Background(), tc.input)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if repo.inserts != 0 {
				t.Error("validation failure must not reach the data store")
			}
		})
	}
}

func TestListingService_Create_ZeroPriceIsValid(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)

	if _, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{
		Address: "Free Lot, Nowhere",
		Price:   0,
	}); err != nil {
		t.Errorf("price 0 must be accepted, got %v", err)
	}
}

func TestListingService_Create_RepoErrorSurfaces(t *testing.T) {
	repo := newStubPropertyRepo()
	repo.failErr = domain.ErrQueryFailed
	svc := NewListingService(repo, discardLogger)

	_, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{
		Address: "1 Test St",
		Price:   500000,
	})
	if !errors.Is(err, domain.ErrQueryFailed) {
		t.Errorf("expected ErrQueryFailed, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// AnalyticsSummary
// ---------------------------------------------------------------------------

func TestListingService_Summary_NoData(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)

	_, err := svc.AnalyticsSummary(context.Background())
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("expected ErrNoData on empty relation, got %v", err)
	}
}

func TestListingService_Summary_TotalsAndAverage(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)
	seedRow(repo, "123 Green St, Sydney", 1200000, ptr("NSW"))
	seedRow(repo, "456 Blue Rd, Melbourne", 850000, ptr("VIC"))
	seedRow(repo, "789 Red Av, Sydney", 2500000, ptr("NSW"))

	summary, err := svc.AnalyticsSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProperties != 3 {
		t.Errorf("expected total 3, got %d", summary.TotalProperties)
	}
	if summary.AveragePrice != "1,516,666.67" {
		t.Errorf("expected average %q, got %q", "1,516,666.67", summary.AveragePrice)
	}
}

func TestListingService_Summary_TotalMatchesListLength(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)
	seedRow(repo, "A", 100, ptr("NSW"))
	seedRow(repo, "B", 200, nil)
	seedRow(repo, "C", 300, ptr("QLD"))

	summary, err := svc.AnalyticsSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	props, _ := svc.ListProperties(context.Background())
	if summary.TotalProperties != len(props) {
		t.Errorf("total %d != list length %d", summary.TotalProperties, len(props))
	}
}

func TestListingService_Summary_NullRegionsExcludedFromMap(t *testing.T) {
	repo := newStubPropertyRepo()
	svc := NewListingService(repo, discardLogger)
	seedRow(repo, "A", 100, ptr("NSW"))
	seedRow(repo, "B", 200, ptr("NSW"))
	seedRow(repo, "C", 300, nil)
	seedRow(repo, "D", 400, ptr("VIC"))

	summary, err := svc.AnalyticsSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withRegion := 0
	for _, n := range summary.PropertiesByRegion {
		withRegion += n
	}
	if withRegion != 3 {
		t.Errorf("region counts must sum to non-null-region rows (3), got %d", withRegion)
	}
	if summary.PropertiesByRegion["NSW"] != 2 {
		t.Errorf("expected NSW count 2, got %d", summary.PropertiesByRegion["NSW"])
	}
	if _, ok := summary.PropertiesByRegion[""]; ok {
		t.Error("null regions must not be bucketed under an empty key")
	}
	if _, ok := summary.PropertiesByRegion["Unknown"]; ok {
		t.Error(`null regions must not be bucketed under "Unknown"`)
	}
}

// ---------------------------------------------------------------------------
// Price formatting
// ---------------------------------------------------------------------------

func TestFormatAveragePrice(t *testing.T) {
	cases := []struct {
		name  string
		total int
		avg   float64
		want  string
	}{
		{"zero rows", 0, 0, "N/A"},
		{"round number", 2, 1500000, "1,500,000.00"},
		{"repeating fraction", 3, 4550000.0 / 3.0, "1,516,666.67"},
		{"small value", 1, 950.5, "950.50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatAveragePrice(tc.total, tc.avg); got != tc.want {
				t.Errorf("formatAveragePrice(%d, %v) = %q, want %q", tc.total, tc.avg, got, tc.want)
			}
		})
	}
}
