package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// MaintenanceRepository defines data access for maintenance requests.
type MaintenanceRepository interface {
	// GetByID returns nil, nil when the request does not exist.
	GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error)
	Create(ctx context.Context, m *models.MaintenanceRequest) error

	// CountByTenant returns lifetime requests and those created at or after since.
	CountByTenant(ctx context.Context, tenantID int64, since time.Time) (models.MaintenanceCounts, error)
	CountByProperty(ctx context.Context, propertyID int64, since time.Time) (models.MaintenanceCounts, error)
	// CountOpen counts submitted and in-progress requests.
	CountOpen(ctx context.Context) (int, error)
}

type maintenanceRepository struct {
	db database.Querier
}

// NewMaintenanceRepository creates a MaintenanceRepository backed by the given pool.
func NewMaintenanceRepository(db database.Querier) MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

const maintenanceColumns = `
	id, tenant_id, property_id, issue_description, status,
	priority_score, completion_time_predicted, created_at`

func scanMaintenance(row rowScanner) (models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	err := row.Scan(
		&m.ID,
		&m.TenantID,
		&m.PropertyID,
		&m.IssueDescription,
		&m.Status,
		&m.PriorityScore,
		&m.CompletionTimePredicted,
		&m.CreatedAt,
	)
	return m, err
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id int64) (*models.MaintenanceRequest, error) {
	query := `SELECT` + maintenanceColumns + ` FROM maintenance_requests WHERE id = $1`

	m, err := scanMaintenance(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query maintenance request %d: %w", id, err)
	}
	return &m, nil
}

func (r *maintenanceRepository) List(ctx context.Context, filter models.MaintenanceFilter) ([]models.MaintenanceRequest, error) {
	var c conditions
	if filter.TenantID != nil {
		c.add("tenant_id = ?", *filter.TenantID)
	}
	if filter.PropertyID != nil {
		c.add("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != "" {
		c.add("status = ?", filter.Status)
	}
	query := `SELECT` + maintenanceColumns + ` FROM maintenance_requests` + c.where() +
		` ORDER BY created_at DESC, id DESC` + c.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	results := []models.MaintenanceRequest{}
	for rows.Next() {
		m, err := scanMaintenance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance row: %w", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance rows: %w", err)
	}
	return results, nil
}

func (r *maintenanceRepository) Create(ctx context.Context, m *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (tenant_id, property_id, issue_description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, m.TenantID, m.PropertyID, m.IssueDescription, m.Status).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert maintenance request: %w", err)
	}
	return nil
}

func (r *maintenanceRepository) CountByTenant(ctx context.Context, tenantID int64, since time.Time) (models.MaintenanceCounts, error) {
	return r.count(ctx, "tenant_id", tenantID, since)
}

func (r *maintenanceRepository) CountByProperty(ctx context.Context, propertyID int64, since time.Time) (models.MaintenanceCounts, error) {
	return r.count(ctx, "property_id", propertyID, since)
}

// count is only called with fixed column names.
func (r *maintenanceRepository) count(ctx context.Context, column string, id int64, since time.Time) (models.MaintenanceCounts, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $2)
		FROM maintenance_requests
		WHERE %s = $1`, column)

	var c models.MaintenanceCounts
	if err := r.db.QueryRow(ctx, query, id, since).Scan(&c.Total, &c.Recent); err != nil {
		return models.MaintenanceCounts{}, fmt.Errorf("failed to count maintenance requests by %s %d: %w", column, id, err)
	}
	return c, nil
}

func (r *maintenanceRepository) CountOpen(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM maintenance_requests WHERE status IN ('submitted', 'in_progress')`

	var n int
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count open maintenance requests: %w", err)
	}
	return n, nil
}
