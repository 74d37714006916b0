package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount is a budget value as received from the upstream data layer, which
// may deliver either a plain number or a currency-formatted string such as
// "$10,000.00".  Parsing is deferred so the engine can apply its documented
// zero-fill fallback instead of surfacing an error to the render path.
type Amount struct {
	value float64
	err   error
}

// AmountOf wraps a numeric budget value.
func AmountOf(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{err: fmt.Errorf("forecast: non-finite amount")}
	}
	return Amount{value: v}
}

// ParseAmount parses a currency-formatted string.  Currency symbols, digit
// grouping, and surrounding whitespace are stripped before conversion; a
// leading minus sign survives so that negative budgets are detected by
// validation rather than masked by parsing.
func ParseAmount(s string) Amount {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		default:
			return -1 // drop $, commas, spaces, currency letters
		}
	}, s)

	if cleaned == "" {
		return Amount{err: fmt.Errorf("forecast: unparseable amount %q", s)}
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return Amount{err: fmt.Errorf("forecast: unparseable amount %q", s)}
	}
	return AmountOf(v)
}

// Value returns the numeric value and whether the amount parsed cleanly.
func (a Amount) Value() (float64, bool) {
	return a.value, a.err == nil
}

// Valid reports whether the amount parsed cleanly and is non-negative.
func (a Amount) Valid() bool {
	return a.err == nil && a.value >= 0
}

// UnmarshalJSON accepts either a JSON number or a currency string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*a = AmountOf(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("forecast: amount must be a number or string")
	}
	*a = ParseAmount(s)
	return nil
}

// MarshalJSON emits the numeric value; invalid amounts marshal as 0.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.err != nil {
		return []byte("0"), nil
	}
	return json.Marshal(a.value)
}

// roundCents rounds v to two decimal places, the working precision of every
// monetary value the engine emits.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
