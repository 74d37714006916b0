package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusinessDaysInclusive(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"full january 2025", date(2025, time.January, 1), date(2025, time.January, 31), 23},
		{"full february 2025", date(2025, time.February, 1), date(2025, time.February, 28), 20},
		{"full march 2025", date(2025, time.March, 1), date(2025, time.March, 31), 21},
		{"single weekday", date(2025, time.March, 10), date(2025, time.March, 10), 1},
		{"single saturday", date(2025, time.March, 8), date(2025, time.March, 8), 0},
		{"weekend only", date(2025, time.March, 8), date(2025, time.March, 9), 0},
		{"mon through fri", date(2025, time.March, 10), date(2025, time.March, 14), 5},
		{"exactly two weeks", date(2025, time.March, 10), date(2025, time.March, 23), 10},
		{"inverted range", date(2025, time.March, 14), date(2025, time.March, 10), 0},
		{"leap february 2024", date(2024, time.February, 1), date(2024, time.February, 29), 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, businessDaysInclusive(tt.from, tt.to))
		})
	}
}

func TestBusinessDaysIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 14, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 5, businessDaysInclusive(from, to))
}

func TestPeriodWeightClipsToRange(t *testing.T) {
	mar := Period{Year: 2025, Month: time.March}

	// Unclipped month.
	assert.Equal(t, 21, periodWeight(mar, date(2025, time.January, 1), date(2025, time.June, 30)))

	// Range starts mid-month: Mar 17 through Mar 31 holds 11 weekdays.
	assert.Equal(t, 11, periodWeight(mar, date(2025, time.March, 17), date(2025, time.June, 30)))

	// Range ends mid-month: Mar 1 through Mar 7 holds 5 weekdays.
	assert.Equal(t, 5, periodWeight(mar, date(2025, time.January, 1), date(2025, time.March, 7)))

	// Period entirely outside the range.
	assert.Equal(t, 0, periodWeight(mar, date(2025, time.April, 1), date(2025, time.June, 30)))
}
