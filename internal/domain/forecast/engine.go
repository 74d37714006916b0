// Package forecast implements the budget forecast-distribution engine: it
// splits a fixed total budget across a chronological run of monthly periods,
// honouring known actual costs for elapsed periods and shaping the remaining
// budget across future periods with a selectable curve.
//
// The engine sits underneath a dashboard render path, so it never fails with
// an error: malformed input degrades to a well-formed zero or partial result,
// and the degradation is reported through Result.Diagnostics and the injected
// logger rather than a return code.
package forecast

import (
	"math"
	"math/rand"
	"time"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// Reason classifies a degraded engine run.
type Reason string

const (
	ReasonInvalidBudget         Reason = "invalid_budget"
	ReasonInvalidRange          Reason = "invalid_range"
	ReasonBoundaryPeriodMissing Reason = "boundary_period_missing"
	ReasonUnknownMethod         Reason = "unknown_method"
)

// Diagnostic records one degradation that occurred during a run.  Callers
// that care (metrics, logs, admin UI) inspect these; the render path ignores
// them and displays the values as-is.
type Diagnostic struct {
	Reason Reason
	Detail string
}

// Request carries one forecast computation.  Callers must not mutate Periods
// or ActualsByPeriod while Generate is running; the engine itself never
// writes to them.
type Request struct {
	// TotalBudget is the amount to distribute.  It may originate from a
	// currency-formatted string upstream; see ParseAmount.
	TotalBudget Amount

	// PeriodStart and PeriodEnd bound the project range, inclusive.
	PeriodStart time.Time
	PeriodEnd   time.Time

	// Method selects the distribution curve.
	Method Method

	// Periods is the chronological run of reporting buckets the caller wants
	// values for.  It must cover at least [PeriodStart, PeriodEnd]; buckets
	// outside the range come back zero-filled.
	Periods []Period

	// ActualsByPeriod maps elapsed periods to their known actual cost.
	// Absent periods are treated as zero actuals.
	ActualsByPeriod map[Period]float64

	// Now is the evaluation clock.  A period is elapsed when its end is not
	// after Now.  Passing the clock explicitly keeps runs reproducible.
	Now time.Time
}

// Entry is the computed record for one period.
type Entry struct {
	// ActualCost is the known incurred cost, zero when none was supplied.
	ActualCost float64 `json:"actualCost"`

	// OriginalForecast is the curve allocation of the full budget across the
	// whole project range, ignoring actuals: the baseline plan as of the
	// project start.
	OriginalForecast float64 `json:"originalForecast"`

	// CurrentForecast is the live value: actuals for elapsed periods, a
	// share of the remaining budget for future ones.
	CurrentForecast float64 `json:"currentForecast"`
}

// Result maps every requested period to its computed entry.  Periods holds
// the caller's chronological order; Entries is keyed for random access.
type Result struct {
	Periods     []Period
	Entries     map[Period]Entry
	Diagnostics []Diagnostic
}

// Degraded reports whether any fallback was taken during the run.
func (r *Result) Degraded() bool {
	return len(r.Diagnostics) > 0
}

// Engine computes forecast distributions.  It is stateless apart from its
// configuration and safe for concurrent use: the default random source is
// the locked math/rand global, and each call works on its own inputs.
type Engine struct {
	params CurveParams
	logger logging.Logger
	rnd    RandSource
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the random source used for curve-midpoint draws.  Tests
// pin a seeded *rand.Rand here to make outputs exactly reproducible.  A
// source injected this way is used as-is, so callers own its thread safety.
func WithRand(rnd RandSource) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// globalRand adapts the locked top-level math/rand functions to RandSource.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// NewEngine constructs an Engine with the given curve parameters.  A nil
// logger is replaced with a no-op one.
func NewEngine(params CurveParams, logger logging.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	e := &Engine{
		params: params,
		logger: logger.Named("forecast"),
		rnd:    globalRand{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Generate runs one forecast distribution.  It never panics and never
// returns an error: every failure mode described in the package comment
// degrades to a well-formed result with a Diagnostic attached.
func (e *Engine) Generate(req Request) Result {
	res := Result{
		Periods: append([]Period(nil), req.Periods...),
		Entries: make(map[Period]Entry, len(req.Periods)),
	}
	// Actual costs are echoed for every requested period up front; all the
	// fallback paths below keep them intact.
	for _, p := range req.Periods {
		res.Entries[p] = Entry{ActualCost: req.ActualsByPeriod[p]}
	}

	total, parsed := req.TotalBudget.Value()
	if !parsed || total < 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		e.degrade(&res, ReasonInvalidBudget, "budget is negative or unparseable")
		return res
	}

	if req.PeriodStart.IsZero() || req.PeriodEnd.IsZero() || req.PeriodStart.After(req.PeriodEnd) {
		e.degrade(&res, ReasonInvalidRange, "period range is empty or inverted")
		return res
	}

	startIdx := indexOfPeriod(req.Periods, PeriodOf(req.PeriodStart))
	endIdx := indexOfPeriod(req.Periods, PeriodOf(req.PeriodEnd))
	if startIdx < 0 || endIdx < 0 || endIdx < startIdx {
		// Partial fallback: keep actuals for elapsed periods, skip all
		// curve-driven forecasting.
		for _, p := range req.Periods {
			if elapsed(p, req.Now) {
				entry := res.Entries[p]
				entry.CurrentForecast = entry.ActualCost
				res.Entries[p] = entry
			}
		}
		e.degrade(&res, ReasonBoundaryPeriodMissing, "range boundary period absent from period list")
		return res
	}

	curve, known := shareCurve(req.Method, e.params, e.rnd)
	if !known {
		e.degrade(&res, ReasonUnknownMethod, "method "+string(req.Method)+" is not recognised; using linear")
	}

	inRange := req.Periods[startIdx : endIdx+1]
	weights := make([]int, len(inRange))
	for i, p := range inRange {
		weights[i] = periodWeight(p, req.PeriodStart, req.PeriodEnd)
	}

	// Elapsed periods with a nonzero weight take their actuals verbatim and
	// consume budget.
	var pastActualTotal float64
	for i, p := range inRange {
		if weights[i] == 0 || !elapsed(p, req.Now) {
			continue
		}
		entry := res.Entries[p]
		entry.CurrentForecast = entry.ActualCost
		res.Entries[p] = entry
		pastActualTotal += entry.ActualCost
	}

	remaining := total - pastActualTotal
	if remaining < 0 {
		remaining = 0
	}

	e.distribute(&res, inRange, weights, curve, remaining, func(i int, p Period) bool {
		return !elapsed(p, req.Now)
	}, func(p Period, v float64) {
		entry := res.Entries[p]
		entry.CurrentForecast = v
		res.Entries[p] = entry
	})

	// The original forecast is the same curve applied to the full budget
	// across every weighted period in range, elapsed or not.
	e.distribute(&res, inRange, weights, curve, total, func(int, Period) bool {
		return true
	}, func(p Period, v float64) {
		entry := res.Entries[p]
		entry.OriginalForecast = v
		res.Entries[p] = entry
	})

	return res
}

// distribute walks the in-range periods selected by include (always skipping
// zero weights), assigns each its curve share of amount rounded to cents,
// and reconciles the rounding residual so the assigned values sum to amount
// exactly while every period stays non-negative.
func (e *Engine) distribute(
	res *Result,
	inRange []Period,
	weights []int,
	curve shareFunc,
	amount float64,
	include func(i int, p Period) bool,
	assign func(p Period, v float64),
) {
	var totalWeight int
	for i, p := range inRange {
		if weights[i] == 0 || !include(i, p) {
			continue
		}
		totalWeight += weights[i]
	}
	if totalWeight == 0 || amount == 0 {
		return
	}

	var (
		cumulative  int
		distributed float64
		indices     []int
		values      []float64
	)
	for i, p := range inRange {
		if weights[i] == 0 || !include(i, p) {
			continue
		}
		t0 := float64(cumulative) / float64(totalWeight)
		cumulative += weights[i]
		t1 := float64(cumulative) / float64(totalWeight)

		v := roundCents((curve(t1) - curve(t0)) * amount)
		distributed += v
		indices = append(indices, i)
		values = append(values, v)
	}

	// Reconcile the column total to the cent. The residual lands on the
	// last distributing period; on cent-scale amounts per-period rounding
	// can overshoot the total, so a period that would go negative is
	// clamped at zero and the remaining deficit carries backward.
	residual := roundCents(amount) - roundCents(distributed)
	for j := len(values) - 1; j >= 0 && residual != 0; j-- {
		v := roundCents(values[j] + residual)
		if v < 0 {
			residual = v
			values[j] = 0
			continue
		}
		values[j] = v
		residual = 0
	}

	for j, i := range indices {
		assign(inRange[i], values[j])
	}
}

func (e *Engine) degrade(res *Result, reason Reason, detail string) {
	res.Diagnostics = append(res.Diagnostics, Diagnostic{Reason: reason, Detail: detail})
	e.logger.Warn("forecast degraded",
		logging.String("reason", string(reason)),
		logging.String("detail", detail),
	)
}

// elapsed reports whether period p has fully ended as of now.
func elapsed(p Period, now time.Time) bool {
	return !now.Before(p.End())
}

func indexOfPeriod(periods []Period, target Period) int {
	for i, p := range periods {
		if p == target {
			return i
		}
	}
	return -1
}
