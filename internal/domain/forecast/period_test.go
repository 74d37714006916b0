package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodBounds(t *testing.T) {
	p := Period{Year: 2025, Month: time.March}

	assert.Equal(t, date(2025, time.March, 1), p.Start())
	assert.Equal(t, date(2025, time.April, 1), p.End())
	assert.Equal(t, date(2025, time.March, 31), p.LastDay())
}

func TestPeriodEndRollsOverYear(t *testing.T) {
	p := Period{Year: 2024, Month: time.December}

	assert.Equal(t, date(2025, time.January, 1), p.End())
	assert.Equal(t, Period{Year: 2025, Month: time.January}, p.Next())
}

func TestPeriodKeyRoundTrip(t *testing.T) {
	p := Period{Year: 2025, Month: time.March}
	require.Equal(t, "march2025", p.Key())

	parsed, err := ParsePeriodKey("march2025")
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePeriodKeyRejectsGarbage(t *testing.T) {
	for _, key := range []string{"", "2025march", "marchtwenty", "smarch2025", "march"} {
		_, err := ParsePeriodKey(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestPeriodOfUsesCalendarMonth(t *testing.T) {
	assert.Equal(t,
		Period{Year: 2025, Month: time.February},
		PeriodOf(time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)),
	)
}

func TestPeriodsBetweenInclusive(t *testing.T) {
	got := PeriodsBetween(date(2024, time.November, 15), date(2025, time.February, 3))

	assert.Equal(t, []Period{
		{Year: 2024, Month: time.November},
		{Year: 2024, Month: time.December},
		{Year: 2025, Month: time.January},
		{Year: 2025, Month: time.February},
	}, got)
}

func TestPeriodsBetweenSingleMonth(t *testing.T) {
	got := PeriodsBetween(date(2025, time.June, 1), date(2025, time.June, 30))
	assert.Equal(t, []Period{{Year: 2025, Month: time.June}}, got)
}

func TestPeriodBefore(t *testing.T) {
	nov := Period{Year: 2024, Month: time.November}
	jan := Period{Year: 2025, Month: time.January}

	assert.True(t, nov.Before(jan))
	assert.False(t, jan.Before(nov))
	assert.False(t, jan.Before(jan))
}
