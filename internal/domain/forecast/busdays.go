package forecast

import "time"

// businessDaysInclusive counts the business days (Monday through Friday) in
// the inclusive date range [from, to].  Times of day are ignored; both bounds
// are treated as whole calendar days.  Returns 0 when to precedes from.
func businessDaysInclusive(from, to time.Time) int {
	from = dateOnly(from)
	to = dateOnly(to)
	if to.Before(from) {
		return 0
	}

	// Whole weeks contribute exactly five business days each; the remaining
	// tail of up to six days is walked directly.
	days := int(to.Sub(from).Hours()/24) + 1
	weeks := days / 7
	count := weeks * 5

	for d := from.AddDate(0, 0, weeks*7); !d.After(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// periodWeight returns the business-day weight of period p within the project
// range [rangeStart, rangeEnd]: the number of weekdays falling both inside
// the period and inside the range.  Periods that do not overlap the range
// weigh zero and are excluded from distribution.
func periodWeight(p Period, rangeStart, rangeEnd time.Time) int {
	from := p.Start()
	if rangeStart.After(from) {
		from = rangeStart
	}
	to := p.LastDay()
	if rangeEnd.Before(to) {
		to = rangeEnd
	}
	return businessDaysInclusive(from, to)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
