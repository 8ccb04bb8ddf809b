package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Havertz69/rental-app/internal/logger"
	"github.com/Havertz69/rental-app/internal/models"
)

// Analytics window bounds, in months.
const (
	DefaultAnalyticsMonths = 6
	MaxAnalyticsMonths     = 24
)

// Insight types and priorities shown on the dashboard.
const (
	InsightWarning     = "warning"
	InsightOpportunity = "opportunity"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Insight is one actionable note on the dashboard.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// DashboardSummary is the portfolio snapshot returned by Summary.
type DashboardSummary struct {
	TotalRevenue               decimal.Decimal `json:"total_revenue"`
	AIInsights                 []Insight       `json:"ai_insights"`
	TotalProperties            int             `json:"total_properties"`
	TotalTenants               int             `json:"total_tenants"`
	AvailableProperties        int             `json:"available_properties"`
	AverageOccupancyRate       float64         `json:"average_occupancy_rate"`
	PendingMaintenanceRequests int             `json:"pending_maintenance_requests"`
}

// Analytics holds reliability and revenue trends.
type Analytics struct {
	ReliabilityDistribution models.ReliabilityDistribution `json:"reliability_distribution"`
	MonthlyRevenue          []models.MonthlyRevenue        `json:"monthly_revenue"`
	Months                  int                            `json:"months"`
}

// DashboardService aggregates portfolio metrics for staff.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	// Analytics covers the last months calendar months including the current
	// one. Values <= 0 use DefaultAnalyticsMonths; larger than
	// MaxAnalyticsMonths are capped.
	Analytics(ctx context.Context, months int) (*Analytics, error)
}

type dashboardService struct {
	repos Repositories
	log   *logger.Logger
	now   Clock
}

// NewDashboardService creates a dashboard service. A nil clock uses the
// system time.
func NewDashboardService(repos Repositories, log *logger.Logger, now Clock) DashboardService {
	if now == nil {
		now = systemClock
	}
	return &dashboardService{
		repos: repos,
		log:   log.Component("dashboard_service"),
		now:   now,
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		props   models.PropertyStats
		tenants models.TenantStats
		revenue decimal.Decimal
		open    int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		props, err = s.repos.Properties.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tenants, err = s.repos.Tenants.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.repos.Payments.RevenueSince(gctx, monthStart(s.now()))
		return err
	})
	g.Go(func() error {
		var err error
		open, err = s.repos.Maintenance.CountOpen(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	summary := &DashboardSummary{
		TotalProperties:            props.Total,
		TotalTenants:               tenants.Active,
		AvailableProperties:        props.Available,
		TotalRevenue:               revenue,
		AverageOccupancyRate:       props.AvgOccupancy,
		PendingMaintenanceRequests: open,
		AIInsights:                 buildInsights(props, tenants),
	}

	s.log.Debug("Dashboard summary built", map[string]interface{}{
		"properties": props.Total,
		"insights":   len(summary.AIInsights),
	})

	return summary, nil
}

// buildInsights emits insights in a fixed order, skipping zero counts.
func buildInsights(props models.PropertyStats, tenants models.TenantStats) []Insight {
	insights := []Insight{}

	if tenants.HighRisk > 0 {
		insights = append(insights, Insight{
			Type:        InsightWarning,
			Title:       fmt.Sprintf("%d High-Risk Tenants Detected", tenants.HighRisk),
			Description: "Consider reviewing tenant behavior and payment history",
			Priority:    PriorityHigh,
		})
	}
	if props.Underpriced > 0 {
		insights = append(insights, Insight{
			Type:        InsightOpportunity,
			Title:       fmt.Sprintf("%d Properties Underpriced", props.Underpriced),
			Description: "AI suggests increasing rent for optimal revenue",
			Priority:    PriorityMedium,
		})
	}
	if props.LowOccupancy > 0 {
		insights = append(insights, Insight{
			Type:        InsightWarning,
			Title:       fmt.Sprintf("%d Properties with Low Occupancy", props.LowOccupancy),
			Description: "Consider adjusting pricing or marketing strategies",
			Priority:    PriorityMedium,
		})
	}

	return insights
}

func (s *dashboardService) Analytics(ctx context.Context, months int) (*Analytics, error) {
	if months <= 0 {
		months = DefaultAnalyticsMonths
	}
	if months > MaxAnalyticsMonths {
		months = MaxAnalyticsMonths
	}

	first := monthStart(s.now()).AddDate(0, -(months - 1), 0)

	var (
		dist    models.ReliabilityDistribution
		revenue []models.MonthlyRevenue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dist, err = s.repos.Tenants.ReliabilityDistribution(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.repos.Payments.MonthlyRevenue(gctx, first)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build analytics: %w", err)
	}

	return &Analytics{
		ReliabilityDistribution: dist,
		MonthlyRevenue:          fillMonths(first, months, revenue),
		Months:                  months,
	}, nil
}

// fillMonths returns one entry per month starting at first, using zero for
// months absent from the query result.
func fillMonths(first time.Time, months int, rows []models.MonthlyRevenue) []models.MonthlyRevenue {
	byMonth := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byMonth[r.Month.Format("2006-01")] = r.Revenue
	}

	out := make([]models.MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		rev, ok := byMonth[m.Format("2006-01")]
		if !ok {
			rev = decimal.Zero
		}
		out = append(out, models.MonthlyRevenue{Month: m, Revenue: rev})
	}
	return out
}
