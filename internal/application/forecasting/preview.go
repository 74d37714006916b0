package forecasting

import (
	"context"
	"fmt"
	"time"

	"github.com/brickfield/sitecast/internal/domain/forecast"
)

// PreviewRequest is an ad-hoc engine run not tied to a stored project.
type PreviewRequest struct {
	TotalBudget forecast.Amount
	StartDate   time.Time
	EndDate     time.Time
	Method      string
	// Actuals uses the upstream key convention, e.g. "march2025".
	Actuals map[string]float64
	// Now overrides the evaluation clock; zero means the service clock.
	Now time.Time
}

// PreviewResult is the computed table for a preview run.
type PreviewResult struct {
	Method      string        `json:"method"`
	TotalBudget float64       `json:"totalBudget"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Periods     []PeriodValue `json:"periods"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// Preview runs the engine once over the requested range.  Like the engine
// itself it does not fail on bad numeric input; degraded runs come back
// zero-filled with warnings attached.  Previews are never cached.
func (s *Service) Preview(_ context.Context, req PreviewRequest) PreviewResult {
	now := req.Now
	if now.IsZero() {
		now = s.now()
	}

	method, _ := forecast.NormalizeMethod(req.Method)
	periods := forecast.PeriodsBetween(req.StartDate, req.EndDate)

	var warnings []string
	actuals := make(map[forecast.Period]float64, len(req.Actuals))
	for key, v := range req.Actuals {
		p, err := forecast.ParsePeriodKey(key)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignored actuals under unrecognised period key %q", key))
			continue
		}
		actuals[p] += v
	}

	res := s.engine.Generate(forecast.Request{
		TotalBudget:     req.TotalBudget,
		PeriodStart:     req.StartDate,
		PeriodEnd:       req.EndDate,
		Method:          method,
		Periods:         periods,
		ActualsByPeriod: actuals,
		Now:             now,
	})

	s.metrics.ForecastRunsTotal.WithLabelValues(string(method)).Inc()
	for _, d := range res.Diagnostics {
		s.metrics.ForecastFallbacksTotal.WithLabelValues(string(d.Reason)).Inc()
		warnings = append(warnings, d.Detail)
	}

	out := PreviewResult{
		Method:      string(method),
		GeneratedAt: now,
		Warnings:    warnings,
	}
	if v, ok := req.TotalBudget.Value(); ok && v >= 0 {
		out.TotalBudget = v
	}
	for _, p := range periods {
		entry := res.Entries[p]
		out.Periods = append(out.Periods, PeriodValue{
			Period:           p.Key(),
			Label:            p.String(),
			ActualCost:       entry.ActualCost,
			OriginalForecast: entry.OriginalForecast,
			CurrentForecast:  entry.CurrentForecast,
		})
	}
	return out
}
