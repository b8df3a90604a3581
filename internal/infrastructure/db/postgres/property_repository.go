package postgres

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/propinsights/property-insights/internal/core/domain"
	"github.com/propinsights/property-insights/internal/core/ports"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS properties (
	id SERIAL PRIMARY KEY,
	address TEXT NOT NULL,
	price INTEGER NOT NULL,
	type TEXT,
	region TEXT
)`

// seedProperties is inserted once, only when the relation is empty.
var seedProperties = []ports.CreatePropertyInput{
	{Address: "123 Green St, Sydney", Price: 1200000, Type: str("House"), Region: str("NSW")},
	{Address: "456 Blue Rd, Melbourne", Price: 850000, Type: str("Apartment"), Region: str("VIC")},
	{Address: "789 Red Av, Sydney", Price: 2500000, Type: str("House"), Region: str("NSW")},
	{Address: "101 Yellow Wy, Brisbane", Price: 650000, Type: str("Townhouse"), Region: str("QLD")},
	{Address: "202 Purple Ln, Sydney", Price: 950000, Type: str("Apartment"), Region: str("NSW")},
}

func str(s string) *string { return &s }

// PropertyRepository persists properties through the connection-per-request
// gateway.
type PropertyRepository struct {
	gw  *Gateway
	log zerolog.Logger
}

func NewPropertyRepository(gw *Gateway, log zerolog.Logger) *PropertyRepository {
	return &PropertyRepository{gw: gw, log: log}
}

// EnsureSchema creates the properties relation if absent and seeds it when
// empty. Idempotent: a non-empty relation is left untouched.
func (r *PropertyRepository) EnsureSchema(ctx context.Context) error {
	return r.gw.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, seed := range seedProperties {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO properties (address, price, type, region) VALUES ($1, $2, $3, $4)`,
				seed.Address, seed.Price, seed.Type, seed.Region,
			); err != nil {
				return err
			}
		}
		r.log.Info().Int("rows", len(seedProperties)).Msg("seeded empty properties relation")
		return nil
	})
}

func (r *PropertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	props := []domain.Property{}
	err := r.gw.WithConn(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `SELECT id, address, price, type, region FROM properties`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p domain.Property
			if err := rows.Scan(&p.ID, &p.Address, &p.Price, &p.Type, &p.Region); err != nil {
				return err
			}
			props = append(props, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

func (r *PropertyRepository) Insert(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	var p domain.Property
	err := r.gw.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx,
			`INSERT INTO properties (address, price, type, region)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, address, price, type, region`,
			in.Address, in.Price, in.Type, in.Region,
		).Scan(&p.ID, &p.Address, &p.Price, &p.Type, &p.Region)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Aggregate reads the totals and the per-region counts inside one
// transaction so the two result sets describe the same snapshot.
func (r *PropertyRepository) Aggregate(ctx context.Context) (*ports.AnalyticsAggregate, error) {
	agg := &ports.AnalyticsAggregate{ByRegion: make(map[string]int)}
	err := r.gw.WithTx(ctx, func(tx *sql.Tx) error {
		var avg sql.NullFloat64
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*), AVG(price) FROM properties`,
		).Scan(&agg.TotalProperties, &avg); err != nil {
			return err
		}
		agg.AveragePrice = avg.Float64

		rows, err := tx.QueryContext(ctx,
			`SELECT region, COUNT(*) FROM properties WHERE region IS NOT NULL GROUP BY region`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var region string
			var count int
			if err := rows.Scan(&region, &count); err != nil {
				return err
			}
			agg.ByRegion[region] = count
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (r *PropertyRepository) CountByRegion(ctx context.Context) ([]domain.RegionCount, error) {
	summary := []domain.RegionCount{}
	err := r.gw.WithConn(ctx, func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT region, COUNT(*) AS property_count
			 FROM properties
			 WHERE region IS NOT NULL
			 GROUP BY region
			 ORDER BY property_count DESC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rc domain.RegionCount
			if err := rows.Scan(&rc.Region, &rc.PropertyCount); err != nil {
				return err
			}
			summary = append(summary, rc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
