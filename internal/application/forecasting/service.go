// Package forecasting orchestrates forecast runs: it loads a project's
// budget lines, normalises upstream method labels and period keys, drives
// the distribution engine per line, and caches the assembled table.
package forecasting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	"github.com/brickfield/sitecast/internal/domain/project"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
)

// PeriodValue is one month's cell in a forecast table.
type PeriodValue struct {
	Period           string  `json:"period"` // "march2025"
	Label            string  `json:"label"`  // "March 2025"
	ActualCost       float64 `json:"actualCost"`
	OriginalForecast float64 `json:"originalForecast"`
	CurrentForecast  float64 `json:"currentForecast"`
}

// LineForecast is the computed table row set for one budget line.
type LineForecast struct {
	BudgetLineID uuid.UUID     `json:"budgetLineId"`
	CostCode     string        `json:"costCode"`
	Description  string        `json:"description"`
	Method       string        `json:"method"`
	TotalBudget  float64       `json:"totalBudget"`
	Periods      []PeriodValue `json:"periods"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// ProjectForecast is the full forecast table for a project.
type ProjectForecast struct {
	ProjectID   uuid.UUID      `json:"projectId"`
	ProjectName string         `json:"projectName"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Lines       []LineForecast `json:"lines"`
	Totals      []PeriodValue  `json:"totals"`
}

// Service runs forecasts against stored projects and ad-hoc previews.
type Service struct {
	repo    project.Repository
	cache   rediscache.Cache
	engine  *forecast.Engine
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	ttl     time.Duration
	now     func() time.Time
}

// NewService wires the forecasting service.  The clock is injectable for
// tests; pass nil for time.Now.
func NewService(
	repo project.Repository,
	cache rediscache.Cache,
	engine *forecast.Engine,
	metrics *prometheus.AppMetrics,
	log logging.Logger,
	ttl time.Duration,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		cache:   cache,
		engine:  engine,
		metrics: metrics,
		logger:  log.Named("forecasting"),
		ttl:     ttl,
		now:     now,
	}
}

// CurveParamsFromConfig maps the configured curve constants into the
// engine's parameter set.
func CurveParamsFromConfig(fc config.ForecastConfig) forecast.CurveParams {
	return forecast.CurveParams{
		BellSigma:           fc.BellSigma,
		BellMidpointLow:     fc.BellMidpointLow,
		BellMidpointHigh:    fc.BellMidpointHigh,
		FrontInflectionLow:  fc.FrontInflectionLow,
		FrontInflectionHigh: fc.FrontInflectionHigh,
		BackInflectionLow:   fc.BackInflectionLow,
		BackInflectionHigh:  fc.BackInflectionHigh,
		LogisticSteepness:   fc.LogisticSteepness,
	}
}

// ProjectForecast computes (or serves from cache) the forecast table for a
// project.  methodOverride, when non-empty, replaces every line's own
// distribution label.  Cache keys include the evaluation day, so tables roll
// forward at midnight without explicit invalidation.
func (s *Service) ProjectForecast(ctx context.Context, projectID uuid.UUID, methodOverride string) (*ProjectForecast, error) {
	now := s.now()
	key := fmt.Sprintf("forecast:%s:%s:%s", projectID, methodOverride, now.UTC().Format("2006-01-02"))

	var (
		out    ProjectForecast
		loaded bool
	)
	err := s.cache.GetOrSet(ctx, key, &out, s.ttl, func(ctx context.Context) (interface{}, error) {
		loaded = true
		s.metrics.CacheMissesTotal.WithLabelValues("forecast").Inc()
		return s.buildProjectForecast(ctx, projectID, methodOverride, now)
	})
	if err != nil {
		return nil, err
	}
	if !loaded {
		s.metrics.CacheHitsTotal.WithLabelValues("forecast").Inc()
	}
	return &out, nil
}

func (s *Service) buildProjectForecast(ctx context.Context, projectID uuid.UUID, methodOverride string, now time.Time) (*ProjectForecast, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.ListBudgetLines(ctx, projectID)
	if err != nil {
		return nil, err
	}

	periods := forecast.PeriodsBetween(proj.StartDate, proj.EndDate)
	out := &ProjectForecast{
		ProjectID:   proj.ID,
		ProjectName: proj.Name,
		GeneratedAt: now,
	}

	totals := make(map[forecast.Period]*PeriodValue, len(periods))
	for _, line := range lines {
		label := line.Method
		if methodOverride != "" {
			label = methodOverride
		}
		lf := s.runLine(proj, line, label, periods, now)
		out.Lines = append(out.Lines, lf)

		for i, p := range periods {
			t, ok := totals[p]
			if !ok {
				t = &PeriodValue{Period: p.Key(), Label: p.String()}
				totals[p] = t
			}
			t.ActualCost += lf.Periods[i].ActualCost
			t.OriginalForecast += lf.Periods[i].OriginalForecast
			t.CurrentForecast += lf.Periods[i].CurrentForecast
		}
	}
	for _, p := range periods {
		if t, ok := totals[p]; ok {
			out.Totals = append(out.Totals, *t)
		}
	}
	return out, nil
}

// runLine executes the engine for one budget line and flattens the result
// into table rows.
func (s *Service) runLine(proj project.Project, line project.BudgetLine, methodLabel string, periods []forecast.Period, now time.Time) LineForecast {
	started := time.Now()

	method, _ := forecast.NormalizeMethod(methodLabel)
	actuals := make(map[forecast.Period]float64, len(line.ActualsByPeriod))
	var warnings []string
	for key, v := range line.ActualsByPeriod {
		p, err := forecast.ParsePeriodKey(key)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignored actuals under unrecognised period key %q", key))
			continue
		}
		actuals[p] += v
	}

	budget := forecast.ParseAmount(line.Budget)
	res := s.engine.Generate(forecast.Request{
		TotalBudget:     budget,
		PeriodStart:     proj.StartDate,
		PeriodEnd:       proj.EndDate,
		Method:          method,
		Periods:         periods,
		ActualsByPeriod: actuals,
		Now:             now,
	})

	s.metrics.ForecastRunsTotal.WithLabelValues(string(method)).Inc()
	s.metrics.ForecastDuration.WithLabelValues(string(method)).Observe(time.Since(started).Seconds())
	for _, d := range res.Diagnostics {
		s.metrics.ForecastFallbacksTotal.WithLabelValues(string(d.Reason)).Inc()
		warnings = append(warnings, d.Detail)
	}

	lf := LineForecast{
		BudgetLineID: line.ID,
		CostCode:     line.CostCode,
		Description:  line.Description,
		Method:       string(method),
		Warnings:     warnings,
	}
	if v, ok := budget.Value(); ok && v >= 0 {
		lf.TotalBudget = v
	}
	for _, p := range periods {
		entry := res.Entries[p]
		lf.Periods = append(lf.Periods, PeriodValue{
			Period:           p.Key(),
			Label:            p.String(),
			ActualCost:       entry.ActualCost,
			OriginalForecast: entry.OriginalForecast,
			CurrentForecast:  entry.CurrentForecast,
		})
	}
	return lf
}
