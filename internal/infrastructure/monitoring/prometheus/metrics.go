package prometheus

import "github.com/prometheus/client_golang/prometheus"

// Default histogram buckets.
var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultEngineDurationBuckets  = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
)

// AppMetrics holds every metric family the service emits.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	// Forecast engine
	ForecastRunsTotal      *prometheus.CounterVec
	ForecastFallbacksTotal *prometheus.CounterVec
	ForecastDuration       *prometheus.HistogramVec

	// Dashboard / reporting
	DashboardSnapshotsTotal *prometheus.CounterVec
	ReportsGeneratedTotal   *prometheus.CounterVec
	ReportMailTotal         *prometheus.CounterVec

	// Cache
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

// NewAppMetrics registers all service metrics on the collector.
func NewAppMetrics(c *Collector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = c.NewCounterVec("http_requests_total", "Total HTTP requests", "method", "path", "status")
	m.HTTPRequestDuration = c.NewHistogramVec("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = c.NewGaugeVec("http_active_requests", "In-flight HTTP requests", "method")

	m.ForecastRunsTotal = c.NewCounterVec("forecast_runs_total", "Forecast engine runs", "method")
	m.ForecastFallbacksTotal = c.NewCounterVec("forecast_fallbacks_total", "Forecast engine degraded runs", "reason")
	m.ForecastDuration = c.NewHistogramVec("forecast_duration_seconds", "Forecast engine run duration", DefaultEngineDurationBuckets, "method")

	m.DashboardSnapshotsTotal = c.NewCounterVec("dashboard_snapshots_total", "Dashboard snapshots built", "role")
	m.ReportsGeneratedTotal = c.NewCounterVec("reports_generated_total", "Reports assembled", "format")
	m.ReportMailTotal = c.NewCounterVec("report_mail_total", "Report emails sent", "status")

	m.CacheHitsTotal = c.NewCounterVec("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = c.NewCounterVec("cache_misses_total", "Cache misses", "cache")

	return m
}
