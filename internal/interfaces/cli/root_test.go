package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/reporting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/infrastructure/notify"
	"github.com/brickfield/sitecast/internal/infrastructure/storage/memory"
	"github.com/brickfield/sitecast/internal/testutil"
)

type pinnedRand struct{}

func (pinnedRand) Float64() float64 { return 0.5 }

func newTestDeps(t *testing.T) (Dependencies, *testutil.MockLogger) {
	t.Helper()
	cfg := config.NewDefaultConfig()
	log := testutil.NewMockLogger()
	store := memory.NewSeededStore()
	clock := func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	metrics := prometheus.NewAppMetrics(prometheus.NewCollector("sitecast_cli_test"))
	cache := rediscache.NewNoop()

	engine := forecast.NewEngine(
		forecasting.CurveParamsFromConfig(cfg.Forecast),
		log,
		forecast.WithRand(pinnedRand{}),
	)
	fc := forecasting.NewService(store, cache, engine, metrics, log, time.Minute, clock)
	mailer := notify.NewLogMailer(notify.Sender{Address: "reports@sitecast.local"}, log)
	return Dependencies{
		Logger:      log,
		Projects:    store,
		Forecasting: fc,
		Dashboard:   dashboard.NewService(store, store, fc, cache, metrics, log, time.Minute, clock),
		Tracking:    tracking.NewService(store, log, clock),
		Reporting:   reporting.NewService(store, fc, tracking.NewService(store, log, clock), mailer, metrics, log, clock),
	}, log
}

func runCommand(t *testing.T, deps Dependencies, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(deps)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestProjectsCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps, "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Riverside Medical Office Building")
	assert.Contains(t, out, "NAME")
}

func TestProjectsCommandJSON(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps, "projects", "-o", "json")
	require.NoError(t, err)

	var projects []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	assert.Len(t, projects, 3)
}

func TestForecastCommandByName(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps, "forecast", "Riverside Medical Office Building")
	require.NoError(t, err)
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "December 2025")
}

func TestForecastCommandUnknownProject(t *testing.T) {
	deps, _ := newTestDeps(t)

	_, _, err := runCommand(t, deps, "forecast", "Nonesuch Tower")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project matches")
}

func TestForecastPreviewCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps,
		"forecast", "preview",
		"--budget", "$10,000.00",
		"--start", "2025-01-01",
		"--end", "2025-03-31",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "March 2025")
}

func TestForecastPreviewWarnsOnBadBudget(t *testing.T) {
	deps, _ := newTestDeps(t)

	_, stderr, err := runCommand(t, deps,
		"forecast", "preview",
		"--budget", "a lot",
		"--start", "2025-01-01",
		"--end", "2025-03-31",
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
}

func TestDashboardCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps,
		"dashboard", memory.ProjectRiverside.String(), "--role", "executive")
	require.NoError(t, err)
	assert.Contains(t, out, "contract_value")
}

func TestDashboardCommandBadRole(t *testing.T) {
	deps, _ := newTestDeps(t)

	_, _, err := runCommand(t, deps,
		"dashboard", memory.ProjectRiverside.String(), "--role", "janitor")
	require.Error(t, err)
}

func TestPermitsCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, stderr, err := runCommand(t, deps,
		"permits", memory.ProjectRiverside.String(), "--expiring-days", "365")
	require.NoError(t, err)
	assert.Contains(t, out, "BP-2024-18821")
	assert.Contains(t, stderr, "expires")
}

func TestBuyoutsCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps, "buyouts", memory.ProjectRiverside.String())
	require.NoError(t, err)
	assert.Contains(t, out, "VARIANCE")
	assert.Contains(t, out, "59000.00")
}

func TestReportCSVCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps, "report", "csv", memory.ProjectRiverside.String())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "cost_code,"))
}

func TestReportSendCommand(t *testing.T) {
	deps, _ := newTestDeps(t)

	out, _, err := runCommand(t, deps,
		"report", "send", memory.ProjectRiverside.String(),
		"--to", "owner@example.com, pm@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "sent to owner@example.com, pm@example.com")
}

func TestFormatTableAlignsColumns(t *testing.T) {
	out := formatTable(
		[]string{"A", "LONGER"},
		[][]string{{"wide value", "x"}},
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, len(lines[0]), len(lines[1]))
}
