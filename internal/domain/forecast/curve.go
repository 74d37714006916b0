package forecast

import (
	"math"
	"strings"
)

// Method selects the shape used to distribute remaining budget across future
// periods.
type Method string

const (
	MethodLinear      Method = "linear"
	MethodFrontLoaded Method = "front_loaded"
	MethodBackLoaded  Method = "back_loaded"
	MethodBellCurve   Method = "bell_curve"
	// MethodManual keeps the linear shape; the UI lets users overwrite
	// individual cells afterwards, so the engine only supplies a neutral
	// starting allocation.
	MethodManual Method = "manual"
)

// Methods returns the canonical ordered list of distribution methods.
func Methods() []Method {
	return []Method{MethodLinear, MethodFrontLoaded, MethodBackLoaded, MethodBellCurve, MethodManual}
}

// NormalizeMethod maps a human-readable distribution label from the UI
// ("Bell Curve", "front-loaded") to its Method token.  The boolean reports
// whether the label was recognised; the engine treats unrecognised methods as
// linear with an observable warning, so callers may pass the result through
// either way.
func NormalizeMethod(label string) (Method, bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	switch s {
	case "linear", "straight_line", "even":
		return MethodLinear, true
	case "front_loaded", "frontloaded", "front":
		return MethodFrontLoaded, true
	case "back_loaded", "backloaded", "back":
		return MethodBackLoaded, true
	case "bell_curve", "bellcurve", "bell", "normal":
		return MethodBellCurve, true
	case "manual":
		return MethodManual, true
	default:
		return Method(s), false
	}
}

// CurveParams holds the tunable constants of the share curves.  The defaults
// are the values existing forecast tables were generated with; they decide
// what "front-loaded" and "back-loaded" mean to users, so overriding them is
// a product decision, not an implementation detail.
type CurveParams struct {
	BellSigma           float64
	BellMidpointLow     float64
	BellMidpointHigh    float64
	FrontInflectionLow  float64
	FrontInflectionHigh float64
	BackInflectionLow   float64
	BackInflectionHigh  float64
	LogisticSteepness   float64
}

// DefaultCurveParams returns the legacy constants.
func DefaultCurveParams() CurveParams {
	return CurveParams{
		BellSigma:           0.15,
		BellMidpointLow:     0.4,
		BellMidpointHigh:    0.6,
		FrontInflectionLow:  0.25,
		FrontInflectionHigh: 0.5,
		BackInflectionLow:   0.5,
		BackInflectionHigh:  0.75,
		LogisticSteepness:   10,
	}
}

// RandSource supplies the uniform draws used to pick curve midpoints.
// *math/rand.Rand satisfies it; tests pin a fixed source to make outputs
// exactly reproducible.
type RandSource interface {
	Float64() float64
}

// shareFunc is a cumulative share curve F: [0,1] → [0,1], monotonically
// non-decreasing with F(0)=0 and F(1)=1.  The budget share of the interval
// [t0, t1] is F(t1) - F(t0).
type shareFunc func(u float64) float64

// shareCurve builds the cumulative share function for method, drawing any
// random curve parameter exactly once from rnd.  The boolean reports whether
// the method was recognised; unknown methods fall back to the linear curve.
func shareCurve(method Method, params CurveParams, rnd RandSource) (shareFunc, bool) {
	uniform := func(low, high float64) float64 {
		return low + rnd.Float64()*(high-low)
	}

	switch method {
	case MethodLinear, MethodManual:
		return func(u float64) float64 { return u }, true
	case MethodBellCurve:
		mu := uniform(params.BellMidpointLow, params.BellMidpointHigh)
		return truncatedCDF(func(u float64) float64 {
			return normalCDF(u, mu, params.BellSigma)
		}), true
	case MethodFrontLoaded:
		u0 := uniform(params.FrontInflectionLow, params.FrontInflectionHigh)
		return truncatedCDF(func(u float64) float64 {
			return logisticCDF(u, u0, params.LogisticSteepness)
		}), true
	case MethodBackLoaded:
		u0 := uniform(params.BackInflectionLow, params.BackInflectionHigh)
		return truncatedCDF(func(u float64) float64 {
			return logisticCDF(u, u0, params.LogisticSteepness)
		}), true
	default:
		return func(u float64) float64 { return u }, false
	}
}

// truncatedCDF rescales a CDF to the unit interval so that F(0)=0 and
// F(1)=1 hold exactly.  Without this, the tails a normal or logistic curve
// leaves outside [0,1] would be dropped from the distribution and the sum
// invariant would depend on rounding correction alone.
func truncatedCDF(raw func(float64) float64) shareFunc {
	f0 := raw(0)
	f1 := raw(1)
	span := f1 - f0
	if span <= 0 {
		return func(u float64) float64 { return u }
	}
	return func(u float64) float64 {
		switch {
		case u <= 0:
			return 0
		case u >= 1:
			return 1
		default:
			return (raw(u) - f0) / span
		}
	}
}

// normalCDF is Φ((u-mu)/sigma).
func normalCDF(u, mu, sigma float64) float64 {
	return 0.5 * (1 + math.Erf((u-mu)/(sigma*math.Sqrt2)))
}

// logisticCDF is the logistic sigmoid with inflection u0 and steepness k.
func logisticCDF(u, u0, k float64) float64 {
	return 1 / (1 + math.Exp(-k*(u-u0)))
}
