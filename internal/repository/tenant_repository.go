package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// highRiskThreshold is the behaviour risk score at which an active tenant is
// reported as high risk on the dashboard.
const highRiskThreshold = 7.0

// TenantRepository defines data access for tenants.
type TenantRepository interface {
	// GetByID returns nil, nil when the tenant does not exist.
	GetByID(ctx context.Context, id int64) (*models.Tenant, error)
	List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error)
	Create(ctx context.Context, t *models.Tenant) error
	// IDs returns the ids of active tenants in ascending order.
	IDs(ctx context.Context) ([]int64, error)
	// ListActiveByProperty returns the active tenants linked to a property.
	ListActiveByProperty(ctx context.Context, propertyID int64) ([]models.Tenant, error)

	UpdateBehaviorRisk(ctx context.Context, id int64, riskScore float64) error

	Stats(ctx context.Context) (models.TenantStats, error)
	ReliabilityDistribution(ctx context.Context) (models.ReliabilityDistribution, error)
}

type tenantRepository struct {
	db database.Querier
}

// NewTenantRepository creates a TenantRepository backed by the given pool.
func NewTenantRepository(db database.Querier) TenantRepository {
	return &tenantRepository{db: db}
}

const tenantColumns = `
	id, first_name, last_name, email, phone, property_id, active,
	budget_min::float8, budget_max::float8, preferred_property_type, preferred_location,
	credit_score, payment_reliability_score, behavior_risk_score, created_at`

func scanTenant(row rowScanner) (models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.FirstName,
		&t.LastName,
		&t.Email,
		&t.Phone,
		&t.PropertyID,
		&t.Active,
		&t.BudgetMin,
		&t.BudgetMax,
		&t.PreferredPropertyType,
		&t.PreferredLocation,
		&t.CreditScore,
		&t.PaymentReliabilityScore,
		&t.BehaviorRiskScore,
		&t.CreatedAt,
	)
	return t, err
}

func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	query := `SELECT` + tenantColumns + ` FROM tenants WHERE id = $1`

	t, err := scanTenant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tenant %d: %w", id, err)
	}
	return &t, nil
}

func (r *tenantRepository) List(ctx context.Context, filter models.TenantFilter) ([]models.Tenant, error) {
	var c conditions
	if filter.Active != nil {
		c.add("active = ?", *filter.Active)
	}
	if filter.PropertyID != nil {
		c.add("property_id = ?", *filter.PropertyID)
	}
	query := `SELECT` + tenantColumns + ` FROM tenants` + c.where() + ` ORDER BY id` +
		c.page(filter.Limit, filter.Offset)

	return r.query(ctx, query, c.args...)
}

func (r *tenantRepository) ListActiveByProperty(ctx context.Context, propertyID int64) ([]models.Tenant, error) {
	query := `SELECT` + tenantColumns + ` FROM tenants WHERE property_id = $1 AND active ORDER BY id`
	return r.query(ctx, query, propertyID)
}

func (r *tenantRepository) query(ctx context.Context, query string, args ...any) ([]models.Tenant, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	results := []models.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant row: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return results, nil
}

func (r *tenantRepository) Create(ctx context.Context, t *models.Tenant) error {
	query := `
		INSERT INTO tenants
			(first_name, last_name, email, phone, property_id, active, budget_min, budget_max,
			 preferred_property_type, preferred_location, credit_score, payment_reliability_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		t.FirstName, t.LastName, t.Email, t.Phone, t.PropertyID, t.Active, t.BudgetMin, t.BudgetMax,
		t.PreferredPropertyType, t.PreferredLocation, t.CreditScore, t.PaymentReliabilityScore,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

func (r *tenantRepository) IDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM tenants WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan tenant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *tenantRepository) UpdateBehaviorRisk(ctx context.Context, id int64, riskScore float64) error {
	query := `UPDATE tenants SET behavior_risk_score = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, riskScore); err != nil {
		return fmt.Errorf("failed to update behavior risk for tenant %d: %w", id, err)
	}
	return nil
}

func (r *tenantRepository) Stats(ctx context.Context) (models.TenantStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE active),
			COUNT(*) FILTER (WHERE active AND behavior_risk_score >= $1)
		FROM tenants`

	var s models.TenantStats
	if err := r.db.QueryRow(ctx, query, highRiskThreshold).Scan(&s.Active, &s.HighRisk); err != nil {
		return models.TenantStats{}, fmt.Errorf("failed to aggregate tenant stats: %w", err)
	}
	return s, nil
}

func (r *tenantRepository) ReliabilityDistribution(ctx context.Context) (models.ReliabilityDistribution, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE payment_reliability_score > 8),
			COUNT(*) FILTER (WHERE payment_reliability_score > 6 AND payment_reliability_score <= 8),
			COUNT(*) FILTER (WHERE payment_reliability_score > 4 AND payment_reliability_score <= 6),
			COUNT(*) FILTER (WHERE payment_reliability_score <= 4)
		FROM tenants`

	var d models.ReliabilityDistribution
	if err := r.db.QueryRow(ctx, query).Scan(&d.Excellent, &d.Good, &d.Average, &d.Poor); err != nil {
		return models.ReliabilityDistribution{}, fmt.Errorf("failed to aggregate reliability distribution: %w", err)
	}
	return d, nil
}
