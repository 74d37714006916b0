package forecasting

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/infrastructure/storage/memory"
	"github.com/brickfield/sitecast/internal/testutil"
	"github.com/brickfield/sitecast/pkg/errors"
)

// pinnedRand makes curve draws deterministic across runs.
type pinnedRand struct{}

func (pinnedRand) Float64() float64 { return 0.5 }

func newTestService(t *testing.T) (*Service, *testutil.MockLogger) {
	t.Helper()
	log := testutil.NewMockLogger()
	engine := forecast.NewEngine(
		CurveParamsFromConfig(config.NewDefaultConfig().Forecast),
		log,
		forecast.WithRand(pinnedRand{}),
	)
	metrics := prometheus.NewAppMetrics(prometheus.NewCollector("sitecast_test"))
	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	svc := NewService(memory.NewSeededStore(), rediscache.NewNoop(), engine, metrics, log, time.Minute, clock)
	return svc, log
}

func TestProjectForecastBuildsTable(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "")
	require.NoError(t, err)

	assert.Equal(t, "Riverside Medical Office Building", out.ProjectName)
	require.Len(t, out.Lines, 4)

	// Riverside runs Jan through Dec 2025.
	require.Len(t, out.Totals, 12)
	assert.Equal(t, "january2025", out.Totals[0].Period)
	assert.Equal(t, "december2025", out.Totals[11].Period)

	for _, line := range out.Lines {
		require.Len(t, line.Periods, 12)
		var sum float64
		for _, pv := range line.Periods {
			sum += pv.CurrentForecast
		}
		// Actuals predate March 10 and sit below budget, so every line's
		// row reconciles to its parsed budget to the cent.
		assert.InDelta(t, line.TotalBudget, sum, 0.005, "line %s", line.CostCode)
	}
}

func TestProjectForecastActualsCarryThrough(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "")
	require.NoError(t, err)

	var concrete *LineForecast
	for i := range out.Lines {
		if out.Lines[i].CostCode == "03-3000" {
			concrete = &out.Lines[i]
		}
	}
	require.NotNil(t, concrete)

	// January and February 2025 have elapsed by March 10; their actuals
	// override the curve.
	assert.Equal(t, 310500.0, concrete.Periods[0].CurrentForecast)
	assert.Equal(t, 402250.75, concrete.Periods[1].CurrentForecast)
	assert.Equal(t, 2450000.0, concrete.TotalBudget)
}

func TestProjectForecastMethodOverride(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "Linear")
	require.NoError(t, err)
	for _, line := range out.Lines {
		assert.Equal(t, "linear", line.Method)
	}
}

func TestProjectForecastUnknownProject(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ProjectForecast(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeProjectNotFound))
}

func TestProjectForecastTotalsSumLines(t *testing.T) {
	svc, _ := newTestService(t)

	out, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "")
	require.NoError(t, err)

	for i, total := range out.Totals {
		var want float64
		for _, line := range out.Lines {
			want += line.Periods[i].CurrentForecast
		}
		assert.InDelta(t, want, total.CurrentForecast, 0.0001)
	}
}

func TestPreviewLinear(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.Preview(context.Background(), PreviewRequest{
		TotalBudget: forecast.ParseAmount("$10,000.00"),
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		Method:      "linear",
		Now:         time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	})

	require.Len(t, out.Periods, 3)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, 10000.0, out.TotalBudget)

	var sum float64
	for _, pv := range out.Periods {
		sum += pv.CurrentForecast
	}
	assert.InDelta(t, 10000.0, sum, 0.0001)
}

func TestPreviewUnknownMethodWarns(t *testing.T) {
	svc, log := newTestService(t)

	out := svc.Preview(context.Background(), PreviewRequest{
		TotalBudget: forecast.AmountOf(1000),
		StartDate:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Method:      "s-curve",
	})

	require.NotEmpty(t, out.Warnings)
	assert.Equal(t, "s_curve", out.Method)
	assert.True(t, log.HasMessage("forecast degraded"))
}

func TestPreviewIgnoresBadActualKeys(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.Preview(context.Background(), PreviewRequest{
		TotalBudget: forecast.AmountOf(5000),
		StartDate:   time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		Method:      "linear",
		Actuals:     map[string]float64{"jan-2025": 100, "january2025": 250},
		Now:         time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC),
	})

	require.Len(t, out.Warnings, 1)
	assert.Contains(t, out.Warnings[0], "jan-2025")
	assert.Equal(t, 250.0, out.Periods[0].CurrentForecast)
}

func TestPreviewInvertedRangeZeroFills(t *testing.T) {
	svc, _ := newTestService(t)

	out := svc.Preview(context.Background(), PreviewRequest{
		TotalBudget: forecast.AmountOf(5000),
		StartDate:   time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		Method:      "linear",
	})

	assert.Empty(t, out.Periods)
	assert.NotEmpty(t, out.Warnings)
}

func TestProjectForecastRecordsCacheHits(t *testing.T) {
	log := testutil.NewMockLogger()
	engine := forecast.NewEngine(
		CurveParamsFromConfig(config.NewDefaultConfig().Forecast),
		log,
		forecast.WithRand(pinnedRand{}),
	)
	metrics := prometheus.NewAppMetrics(prometheus.NewCollector("sitecast_test"))
	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	svc := NewService(memory.NewSeededStore(), testutil.NewMemoryCache(), engine, metrics, log, time.Minute, clock)

	first, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "")
	require.NoError(t, err)
	second, err := svc.ProjectForecast(context.Background(), memory.ProjectRiverside, "")
	require.NoError(t, err)
	assert.Equal(t, first.ProjectName, second.ProjectName)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.CacheMissesTotal.WithLabelValues("forecast")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(metrics.CacheHitsTotal.WithLabelValues("forecast")))
}
