package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Havertz69/rental-app/internal/database"
	"github.com/Havertz69/rental-app/internal/models"
)

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	// GetByID returns nil, nil when the payment does not exist.
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error)
	Create(ctx context.Context, p *models.Payment) error
	// PendingIDs returns ids of payments that have a tenant and are not paid.
	PendingIDs(ctx context.Context) ([]int64, error)

	// History summarises every payment a tenant has made.
	History(ctx context.Context, tenantID int64) (models.PaymentHistory, error)
	UpdatePrediction(ctx context.Context, id int64, lateProbability float64, daysOverdue int, riskScore float64) error

	// RevenueSince sums paid payments with payment_date >= since.
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	// MonthlyRevenue returns paid totals grouped by calendar month, oldest
	// first. Months with no payments are omitted.
	MonthlyRevenue(ctx context.Context, since time.Time) ([]models.MonthlyRevenue, error)
}

type paymentRepository struct {
	db database.Querier
}

// NewPaymentRepository creates a PaymentRepository backed by the given pool.
func NewPaymentRepository(db database.Querier) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `
	id, tenant_id, property_id, amount::float8, due_date, payment_date, status,
	late_payment_probability, days_overdue_predicted, payment_risk_score, created_at`

func scanPayment(row rowScanner) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.PropertyID,
		&p.Amount,
		&p.DueDate,
		&p.PaymentDate,
		&p.Status,
		&p.LatePaymentProbability,
		&p.DaysOverduePredicted,
		&p.PaymentRiskScore,
		&p.CreatedAt,
	)
	return p, err
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `SELECT` + paymentColumns + ` FROM payments WHERE id = $1`

	p, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query payment %d: %w", id, err)
	}
	return &p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
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
	query := `SELECT` + paymentColumns + ` FROM payments` + c.where() + ` ORDER BY due_date DESC, id DESC` +
		c.page(filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	results := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}
	return results, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (tenant_id, property_id, amount, due_date, payment_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		p.TenantID, p.PropertyID, p.Amount, p.DueDate, p.PaymentDate, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) PendingIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM payments WHERE tenant_id IS NOT NULL AND status <> 'paid' ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payment ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan payment id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *paymentRepository) History(ctx context.Context, tenantID int64) (models.PaymentHistory, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status IN ('late', 'overdue')),
			(AVG(amount) FILTER (WHERE status = 'paid'))::float8
		FROM payments
		WHERE tenant_id = $1`

	var h models.PaymentHistory
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&h.Total, &h.Late, &h.AvgPaidAmount); err != nil {
		return models.PaymentHistory{}, fmt.Errorf("failed to aggregate payment history for tenant %d: %w", tenantID, err)
	}
	return h, nil
}

func (r *paymentRepository) UpdatePrediction(ctx context.Context, id int64, lateProbability float64, daysOverdue int, riskScore float64) error {
	query := `
		UPDATE payments
		SET late_payment_probability = $2, days_overdue_predicted = $3, payment_risk_score = $4
		WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, lateProbability, daysOverdue, riskScore); err != nil {
		return fmt.Errorf("failed to update prediction for payment %d: %w", id, err)
	}
	return nil
}

func (r *paymentRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)::text
		FROM payments
		WHERE status = 'paid' AND payment_date >= $1`

	var total string
	if err := r.db.QueryRow(ctx, query, since).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse revenue %q: %w", total, err)
	}
	return d, nil
}

func (r *paymentRepository) MonthlyRevenue(ctx context.Context, since time.Time) ([]models.MonthlyRevenue, error) {
	query := `
		SELECT date_trunc('month', payment_date), SUM(amount)::text
		FROM payments
		WHERE status = 'paid' AND payment_date >= $1
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	defer rows.Close()

	results := []models.MonthlyRevenue{}
	for rows.Next() {
		var (
			month time.Time
			total string
		)
		if err := rows.Scan(&month, &total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly revenue row: %w", err)
		}
		d, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revenue %q: %w", total, err)
		}
		results = append(results, models.MonthlyRevenue{Month: month, Revenue: d})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly revenue rows: %w", err)
	}
	return results, nil
}
