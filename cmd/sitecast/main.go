// CLI entry point for sitecast.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/reporting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	rediscache "github.com/brickfield/sitecast/internal/infrastructure/cache/redis"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/infrastructure/notify"
	"github.com/brickfield/sitecast/internal/infrastructure/storage/memory"
	"github.com/brickfield/sitecast/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := buildDependencies()
	root := cli.NewRootCommand(deps)
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

// buildDependencies wires the services over the demo store.  The CLI logs to
// stderr so command output stays pipeable.
func buildDependencies() cli.Dependencies {
	cfg := config.NewDefaultConfig()
	cfg.Log.Format = "console"
	cfg.Log.Level = "warn"
	cfg.Log.OutputPaths = []string{"stderr"}
	logger := logging.MustLogger(cfg.Log)

	metrics := prometheus.NewAppMetrics(prometheus.NewCollector(cfg.Metrics.Namespace))
	cache := rediscache.NewNoop()
	store := memory.NewSeededStore()

	engine := forecast.NewEngine(forecasting.CurveParamsFromConfig(cfg.Forecast), logger)
	fc := forecasting.NewService(store, cache, engine, metrics, logger, time.Minute, nil)
	tr := tracking.NewService(store, logger, nil)
	mailer := notify.NewLogMailer(notify.Sender{Address: cfg.Notify.FromAddress, Name: cfg.Notify.FromName}, logger)

	return cli.Dependencies{
		Logger:      logger,
		Projects:    store,
		Forecasting: fc,
		Dashboard:   dashboard.NewService(store, store, fc, cache, metrics, logger, time.Minute, nil),
		Tracking:    tr,
		Reporting:   reporting.NewService(store, fc, tr, mailer, metrics, logger, nil),
	}
}
