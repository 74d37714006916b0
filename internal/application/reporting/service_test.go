package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/infrastructure/notify"
	"github.com/brickfield/sitecast/internal/infrastructure/storage/memory"
	"github.com/brickfield/sitecast/internal/testutil"
	"github.com/brickfield/sitecast/pkg/errors"
)

type pinnedRand struct{}

func (pinnedRand) Float64() float64 { return 0.5 }

type failingMailer struct{}

func (failingMailer) Send(context.Context, notify.Message) error {
	return errors.New(errors.ErrCodeMailDeliveryFailed, "gateway down")
}

func newTestService(t *testing.T, mailer notify.Mailer) *Service {
	t.Helper()
	log := testutil.NewMockLogger()
	store := memory.NewSeededStore()
	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	engine := forecast.NewEngine(
		forecasting.CurveParamsFromConfig(config.NewDefaultConfig().Forecast),
		log,
		forecast.WithRand(pinnedRand{}),
	)
	metrics := prometheus.NewAppMetrics(prometheus.NewCollector("sitecast_test"))
	fc := forecasting.NewService(store, rediscache.NewNoop(), engine, metrics, log, time.Minute, clock)
	tr := tracking.NewService(store, log, clock)
	return NewService(store, fc, tr, mailer, metrics, log, clock)
}

func TestAssembleReportSummary(t *testing.T) {
	svc := newTestService(t, notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, testutil.NewMockLogger()))

	report, err := svc.Assemble(context.Background(), memory.ProjectRiverside)
	require.NoError(t, err)

	assert.Equal(t, "Riverside Medical Office Building", report.ProjectName)
	assert.Equal(t, 18400000.0, report.Summary.ContractValue)
	assert.InDelta(t, 8865000, report.Summary.TotalBudget, 0.001)

	actuals := 310500 + 402250.75 + 145000.0
	assert.InDelta(t, actuals, report.Summary.ActualsToDate, 0.001)
	assert.InDelta(t, report.Summary.TotalBudget-actuals, report.Summary.RemainingBudget, 0.001)

	// Every seeded line keeps its actuals below budget, so the forecast at
	// completion reconciles back to the budget.
	assert.InDelta(t, report.Summary.TotalBudget, report.Summary.ForecastAtDone, 0.05)

	assert.Equal(t, 2, report.Summary.PermitsApproved)
	assert.Len(t, report.Permits, 3)
	assert.Len(t, report.Buyouts, 3)
	require.NotNil(t, report.Forecast)
	assert.Len(t, report.Forecast.Lines, 4)
}

func TestAssembleUnknownProject(t *testing.T) {
	svc := newTestService(t, notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, testutil.NewMockLogger()))

	_, err := svc.Assemble(context.Background(), uuid.New())
	assert.True(t, errors.IsCode(err, errors.ErrCodeProjectNotFound))
}

func TestExportCSVShape(t *testing.T) {
	svc := newTestService(t, notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, testutil.NewMockLogger()))

	data, err := svc.ExportCSV(context.Background(), memory.ProjectRiverside)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	// Header + 4 lines x 3 kinds + totals row.
	require.Len(t, records, 14)

	header := records[0]
	assert.Equal(t, []string{"cost_code", "description", "method", "kind", "total_budget"}, header[:5])
	assert.Equal(t, "january2025", header[5])
	assert.Len(t, header, 5+12)

	total := records[len(records)-1]
	assert.Equal(t, "TOTAL", total[0])

	// The totals row sums to the combined budget since actuals stay under
	// budget as of the pinned clock.
	var sum float64
	for _, cell := range total[5:] {
		v, err := strconv.ParseFloat(cell, 64)
		require.NoError(t, err)
		sum += v
	}
	assert.InDelta(t, 8865000, sum, 0.05)
}

func TestSendDeliversCSVAttachment(t *testing.T) {
	mailer := notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, testutil.NewMockLogger())
	svc := newTestService(t, mailer)

	report, err := svc.Send(context.Background(), memory.ProjectRiverside, []string{"owner@example.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, report.ReportID)

	sent := mailer.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Subject, "Riverside")
	require.Len(t, sent[0].Attachments, 1)
	assert.Equal(t, "report.csv", sent[0].Attachments[0].Filename)
	assert.NotEmpty(t, sent[0].Attachments[0].Data)
}

func TestSendMailerFailure(t *testing.T) {
	svc := newTestService(t, failingMailer{})

	_, err := svc.Send(context.Background(), memory.ProjectRiverside, []string{"owner@example.com"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeMailDeliveryFailed))
}

func TestSendNoRecipients(t *testing.T) {
	mailer := notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, testutil.NewMockLogger())
	svc := newTestService(t, mailer)

	_, err := svc.Send(context.Background(), memory.ProjectRiverside, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMailNoRecipients))
}
