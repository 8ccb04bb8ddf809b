package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// BehaviorRepository defines data access for the append-only tenant behaviour log.
type BehaviorRepository interface {
	Create(ctx context.Context, b *models.TenantBehavior) error
	ListByTenant(ctx context.Context, tenantID int64, limit int) ([]models.TenantBehavior, error)
	// Summary aggregates the tenant's behaviours recorded at or after since.
	Summary(ctx context.Context, tenantID int64, since time.Time) (models.BehaviorSummary, error)
}

type behaviorRepository struct {
	db database.Querier
}

// NewBehaviorRepository creates a BehaviorRepository backed by the given pool.
func NewBehaviorRepository(db database.Querier) BehaviorRepository {
	return &behaviorRepository{db: db}
}

func (r *behaviorRepository) Create(ctx context.Context, b *models.TenantBehavior) error {
	query := `
		INSERT INTO tenant_behaviors (tenant_id, behavior_type, data, risk_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp`

	data := b.Data
	if len(data) == 0 {
		data = []byte("{}")
	}
	err := r.db.QueryRow(ctx, query, b.TenantID, b.BehaviorType, data, b.RiskScore).Scan(&b.ID, &b.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert behavior for tenant %d: %w", b.TenantID, err)
	}
	b.Data = data
	return nil
}

func (r *behaviorRepository) ListByTenant(ctx context.Context, tenantID int64, limit int) ([]models.TenantBehavior, error) {
	var c conditions
	c.add("tenant_id = ?", tenantID)
	query := `
		SELECT id, tenant_id, behavior_type, data, risk_score, timestamp
		FROM tenant_behaviors` + c.where() + ` ORDER BY timestamp DESC, id DESC` + c.page(limit, 0)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list behaviors for tenant %d: %w", tenantID, err)
	}
	defer rows.Close()

	results := []models.TenantBehavior{}
	for rows.Next() {
		var b models.TenantBehavior
		if err := rows.Scan(&b.ID, &b.TenantID, &b.BehaviorType, &b.Data, &b.RiskScore, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan behavior row: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating behavior rows: %w", err)
	}
	return results, nil
}

func (r *behaviorRepository) Summary(ctx context.Context, tenantID int64, since time.Time) (models.BehaviorSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(risk_score), 0)
		FROM tenant_behaviors
		WHERE tenant_id = $1 AND timestamp >= $2`

	var s models.BehaviorSummary
	if err := r.db.QueryRow(ctx, query, tenantID, since).Scan(&s.Count, &s.AvgRisk); err != nil {
		return models.BehaviorSummary{}, fmt.Errorf("failed to summarise behaviors for tenant %d: %w", tenantID, err)
	}
	return s, nil
}
