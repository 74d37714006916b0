// Package dashboard assembles role-scoped KPI snapshots.  Which widgets a
// viewer gets depends on their role; the numbers come from the forecast
// table and the tracking records.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	"github.com/brickfield/sitecast/internal/domain/project"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
)

// permitLookahead is the expiry window surfaced on dashboards.
const permitLookahead = 90 * 24 * time.Hour

// Widget is one KPI card.
type Widget struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // "usd" | "count" | "percent"
}

// Snapshot is the widget set for one project and role.
type Snapshot struct {
	ProjectID   uuid.UUID    `json:"projectId"`
	ProjectName string       `json:"projectName"`
	Role        project.Role `json:"role"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Widgets     []Widget     `json:"widgets"`
}

// Service builds dashboard snapshots.
type Service struct {
	repo        project.Repository
	tracking    project.TrackingRepository
	forecasting *forecasting.Service
	cache       rediscache.Cache
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
	ttl         time.Duration
	now         func() time.Time
}

// NewService wires the dashboard service.  Pass nil for time.Now.
func NewService(
	repo project.Repository,
	tracking project.TrackingRepository,
	fc *forecasting.Service,
	cache rediscache.Cache,
	metrics *prometheus.AppMetrics,
	log logging.Logger,
	ttl time.Duration,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        repo,
		tracking:    tracking,
		forecasting: fc,
		cache:       cache,
		metrics:     metrics,
		logger:      log.Named("dashboard"),
		ttl:         ttl,
		now:         now,
	}
}

// Snapshot computes (or serves from cache) the role's widget set for a
// project.
func (s *Service) Snapshot(ctx context.Context, projectID uuid.UUID, role project.Role) (*Snapshot, error) {
	now := s.now()
	key := fmt.Sprintf("dashboard:%s:%s:%s", projectID, role, now.UTC().Format("2006-01-02"))

	var (
		out    Snapshot
		loaded bool
	)
	err := s.cache.GetOrSet(ctx, key, &out, s.ttl, func(ctx context.Context) (interface{}, error) {
		loaded = true
		s.metrics.CacheMissesTotal.WithLabelValues("dashboard").Inc()
		return s.build(ctx, projectID, role, now)
	})
	if err != nil {
		return nil, err
	}
	if !loaded {
		s.metrics.CacheHitsTotal.WithLabelValues("dashboard").Inc()
	}
	return &out, nil
}

func (s *Service) build(ctx context.Context, projectID uuid.UUID, role project.Role, now time.Time) (*Snapshot, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	table, err := s.forecasting.ProjectForecast(ctx, projectID, "")
	if err != nil {
		return nil, err
	}
	permits, err := s.tracking.ListPermits(ctx, projectID)
	if err != nil {
		return nil, err
	}
	buyouts, err := s.tracking.ListBuyouts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	k := newKPIs(proj, table, permits, buyouts, now)
	snap := &Snapshot{
		ProjectID:   proj.ID,
		ProjectName: proj.Name,
		Role:        role,
		GeneratedAt: now,
		Widgets:     widgetsForRole(role, k),
	}
	s.metrics.DashboardSnapshotsTotal.WithLabelValues(string(role)).Inc()
	return snap, nil
}

// kpis holds every figure any role's widget set can draw from.
type kpis struct {
	contractValue    float64
	totalBudget      float64
	actualsToDate    float64
	forecastAtDone   float64
	remainingBudget  float64
	variancePercent  float64
	currentMonthPlan float64
	permitsApproved  float64
	permitsPending   float64
	permitsExpiring  float64
	buyoutsOpen      float64
	buyoutSavings    float64
	buyoutCommitted  float64
}

func newKPIs(proj project.Project, table *forecasting.ProjectForecast, permits []project.Permit, buyouts []project.Buyout, now time.Time) kpis {
	k := kpis{contractValue: proj.ContractValue}

	for _, line := range table.Lines {
		k.totalBudget += line.TotalBudget
	}
	currentKey := forecast.PeriodOf(now).Key()
	for _, pv := range table.Totals {
		k.forecastAtDone += pv.CurrentForecast
		k.actualsToDate += pv.ActualCost
		if pv.Period == currentKey {
			k.currentMonthPlan = pv.CurrentForecast
		}
	}
	k.remainingBudget = k.totalBudget - k.actualsToDate
	if k.totalBudget > 0 {
		k.variancePercent = (k.forecastAtDone - k.totalBudget) / k.totalBudget * 100
	}

	for _, p := range permits {
		switch p.Status {
		case project.PermitApproved:
			k.permitsApproved++
		case project.PermitPending:
			k.permitsPending++
		}
		if p.ExpiresWithin(now, permitLookahead) {
			k.permitsExpiring++
		}
	}

	for _, b := range buyouts {
		switch b.Status {
		case project.BuyoutPending, project.BuyoutBidding:
			k.buyoutsOpen++
		case project.BuyoutAwarded, project.BuyoutExecuted:
			k.buyoutCommitted += b.AwardValue
			k.buyoutSavings += b.Variance()
		}
	}
	return k
}

func widgetsForRole(role project.Role, k kpis) []Widget {
	switch role {
	case project.RoleExecutive:
		return []Widget{
			{ID: "contract_value", Title: "Contract Value", Value: k.contractValue, Unit: "usd"},
			{ID: "forecast_at_completion", Title: "Forecast at Completion", Value: k.forecastAtDone, Unit: "usd"},
			{ID: "cost_variance", Title: "Cost Variance", Value: k.variancePercent, Unit: "percent"},
			{ID: "buyout_savings", Title: "Buyout Savings", Value: k.buyoutSavings, Unit: "usd"},
		}
	case project.RoleProjectManager:
		return []Widget{
			{ID: "total_budget", Title: "Total Budget", Value: k.totalBudget, Unit: "usd"},
			{ID: "actuals_to_date", Title: "Actuals to Date", Value: k.actualsToDate, Unit: "usd"},
			{ID: "remaining_budget", Title: "Remaining Budget", Value: k.remainingBudget, Unit: "usd"},
			{ID: "permits_expiring", Title: "Permits Expiring (90d)", Value: k.permitsExpiring, Unit: "count"},
			{ID: "buyouts_open", Title: "Open Buyout Packages", Value: k.buyoutsOpen, Unit: "count"},
		}
	case project.RoleSuperintendent:
		return []Widget{
			{ID: "permits_approved", Title: "Permits Approved", Value: k.permitsApproved, Unit: "count"},
			{ID: "permits_pending", Title: "Permits Pending", Value: k.permitsPending, Unit: "count"},
			{ID: "permits_expiring", Title: "Permits Expiring (90d)", Value: k.permitsExpiring, Unit: "count"},
			{ID: "current_month_plan", Title: "This Month's Planned Spend", Value: k.currentMonthPlan, Unit: "usd"},
		}
	case project.RoleAccountant:
		return []Widget{
			{ID: "actuals_to_date", Title: "Actuals to Date", Value: k.actualsToDate, Unit: "usd"},
			{ID: "remaining_budget", Title: "Remaining Budget", Value: k.remainingBudget, Unit: "usd"},
			{ID: "buyout_committed", Title: "Committed via Buyouts", Value: k.buyoutCommitted, Unit: "usd"},
			{ID: "cost_variance", Title: "Cost Variance", Value: k.variancePercent, Unit: "percent"},
		}
	default:
		return nil
	}
}
