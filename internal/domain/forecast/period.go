package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Period identifies one calendar-month reporting bucket.  It is the
// structured replacement for the string keys ("march2025") the upstream data
// layer uses; the string form exists only at the serialization boundary so
// that period arithmetic never depends on label parsing.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the Period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Start returns the first instant of the period (UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following period.  A period has fully
// elapsed relative to a clock reading now when !now.Before(p.End()).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// LastDay returns the final calendar day of the period.
func (p Period) LastDay() time.Time {
	return p.End().AddDate(0, 0, -1)
}

// Next returns the following period.
func (p Period) Next() Period {
	return PeriodOf(p.End())
}

// Before reports whether p is chronologically before q.
func (p Period) Before(q Period) bool {
	return p.Year < q.Year || (p.Year == q.Year && p.Month < q.Month)
}

// Key returns the upstream label convention: lowercase month name followed by
// the four-digit year, e.g. "march2025".
func (p Period) Key() string {
	return strings.ToLower(p.Month.String()) + fmt.Sprintf("%d", p.Year)
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, 12)
	for mo := time.January; mo <= time.December; mo++ {
		m[strings.ToLower(mo.String())] = mo
	}
	return m
}()

// ParsePeriodKey parses the upstream label convention back into a Period.
// Accepted form: lowercase (or mixed-case) English month name immediately
// followed by a four-digit year, e.g. "march2025", "March2025".
func ParsePeriodKey(key string) (Period, error) {
	s := strings.ToLower(strings.TrimSpace(key))
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 || len(s)-i != 4 {
		return Period{}, fmt.Errorf("forecast: invalid period key %q", key)
	}
	month, ok := monthsByName[s[:i]]
	if !ok {
		return Period{}, fmt.Errorf("forecast: invalid month in period key %q", key)
	}
	var year int
	if _, err := fmt.Sscanf(s[i:], "%d", &year); err != nil {
		return Period{}, fmt.Errorf("forecast: invalid year in period key %q", key)
	}
	return Period{Year: year, Month: month}, nil
}

// PeriodsBetween returns the chronological run of periods covering
// [start, end].  It returns nil when end precedes start.
func PeriodsBetween(start, end time.Time) []Period {
	if end.Before(start) {
		return nil
	}
	var out []Period
	last := PeriodOf(end)
	for p := PeriodOf(start); !last.Before(p); p = p.Next() {
		out = append(out, p)
	}
	return out
}
