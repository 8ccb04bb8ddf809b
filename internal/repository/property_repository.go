package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// PropertyRepository defines data access for properties and their aggregates.
type PropertyRepository interface {
	// GetByID returns nil, nil when the property does not exist.
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	// List returns properties ordered by id. An empty result is not an error.
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)
	Create(ctx context.Context, p *models.Property) error
	// IDs returns every property id in ascending order.
	IDs(ctx context.Context) ([]int64, error)

	// CohortStats aggregates all properties sharing location and type,
	// including the property being scored.
	CohortStats(ctx context.Context, location, propertyType string) (models.CohortStats, error)
	// LocationStats aggregates occupancy over every property in a location.
	LocationStats(ctx context.Context, location string) (models.LocationStats, error)
	Stats(ctx context.Context) (models.PropertyStats, error)

	UpdatePricing(ctx context.Context, id int64, suggestedPrice, demandScore float64) error
	UpdateRiskScore(ctx context.Context, id int64, riskScore float64) error
}

type propertyRepository struct {
	db database.Querier
}

// NewPropertyRepository creates a PropertyRepository backed by the given pool.
func NewPropertyRepository(db database.Querier) PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `
	id, name, property_type, location, price::float8, bedrooms, bathrooms,
	square_feet, available, occupancy_rate, suggested_price::float8,
	demand_score, risk_score, created_at, updated_at`

func scanProperty(row rowScanner) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PropertyType,
		&p.Location,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.SquareFeet,
		&p.Available,
		&p.OccupancyRate,
		&p.SuggestedPrice,
		&p.DemandScore,
		&p.RiskScore,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	query := `SELECT` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property %d: %w", id, err)
	}
	return &p, nil
}

func (r *propertyRepository) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	var c conditions
	if filter.Available != nil {
		c.add("available = ?", *filter.Available)
	}
	if filter.Location != "" {
		c.add("location = ?", filter.Location)
	}
	if filter.PropertyType != "" {
		c.add("property_type = ?", filter.PropertyType)
	}
	query := `SELECT` + propertyColumns + ` FROM properties` + c.where() + ` ORDER BY id` +
		c.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	results := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	return results, nil
}

func (r *propertyRepository) Create(ctx context.Context, p *models.Property) error {
	query := `
		INSERT INTO properties
			(name, property_type, location, price, bedrooms, bathrooms, square_feet, available, occupancy_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		p.Name, p.PropertyType, p.Location, p.Price, p.Bedrooms, p.Bathrooms,
		p.SquareFeet, p.Available, p.OccupancyRate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *propertyRepository) IDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM properties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list property ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan property id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *propertyRepository) CohortStats(ctx context.Context, location, propertyType string) (models.CohortStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT available),
			COALESCE(AVG(price), 0)::float8
		FROM properties
		WHERE location = $1 AND property_type = $2`

	var s models.CohortStats
	if err := r.db.QueryRow(ctx, query, location, propertyType).Scan(&s.Total, &s.Occupied, &s.AvgPrice); err != nil {
		return models.CohortStats{}, fmt.Errorf("failed to aggregate cohort (%s, %s): %w", location, propertyType, err)
	}
	return s, nil
}

func (r *propertyRepository) LocationStats(ctx context.Context, location string) (models.LocationStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(occupancy_rate), 0)
		FROM properties
		WHERE location = $1`

	var s models.LocationStats
	if err := r.db.QueryRow(ctx, query, location).Scan(&s.Count, &s.AvgOccupancy); err != nil {
		return models.LocationStats{}, fmt.Errorf("failed to aggregate location %s: %w", location, err)
	}
	return s, nil
}

func (r *propertyRepository) Stats(ctx context.Context) (models.PropertyStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE available),
			COALESCE(AVG(occupancy_rate), 0),
			COUNT(*) FILTER (WHERE suggested_price > price * 1.1),
			COUNT(*) FILTER (WHERE occupancy_rate < 0.5 AND available)
		FROM properties`

	var s models.PropertyStats
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Available, &s.AvgOccupancy, &s.Underpriced, &s.LowOccupancy)
	if err != nil {
		return models.PropertyStats{}, fmt.Errorf("failed to aggregate property stats: %w", err)
	}
	return s, nil
}

func (r *propertyRepository) UpdatePricing(ctx context.Context, id int64, suggestedPrice, demandScore float64) error {
	query := `
		UPDATE properties
		SET suggested_price = $2, demand_score = $3, updated_at = now()
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, suggestedPrice, demandScore); err != nil {
		return fmt.Errorf("failed to update pricing for property %d: %w", id, err)
	}
	return nil
}

func (r *propertyRepository) UpdateRiskScore(ctx context.Context, id int64, riskScore float64) error {
	query := `UPDATE properties SET risk_score = $2, updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, riskScore); err != nil {
		return fmt.Errorf("failed to update risk score for property %d: %w", id, err)
	}
	return nil
}
