// API server entry point for sitecast.
package main

import (
	"context"
	"flag"
	"fmt"
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
	httpserver "github.com/brickfield/sitecast/internal/interfaces/http"
	"github.com/brickfield/sitecast/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using environment and defaults\n", err)
		cfg, err = config.LoadFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger := logging.MustLogger(cfg.Log)
	logger.Info("starting sitecast api server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := prometheus.NewCollector(cfg.Metrics.Namespace)
	metrics := prometheus.NewAppMetrics(collector)

	cache, redisClient := buildCache(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Demo dataset; the store is the persistence seam for a future database
	// backend.
	store := memory.NewSeededStore()

	engine := forecast.NewEngine(forecasting.CurveParamsFromConfig(cfg.Forecast), logger)
	fc := forecasting.NewService(store, cache, engine, metrics, logger, cfg.Cache.ForecastTTL, nil)
	db := dashboard.NewService(store, store, fc, cache, metrics, logger, cfg.Cache.DashboardTTL, nil)
	tr := tracking.NewService(store, logger, nil)
	mailer := notify.NewLogMailer(notify.Sender{Address: cfg.Notify.FromAddress, Name: cfg.Notify.FromName}, logger)
	rp := reporting.NewService(store, fc, tr, mailer, metrics, logger, nil)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Config:      cfg,
		Logger:      logger,
		Collector:   collector,
		Metrics:     metrics,
		Projects:    store,
		Forecasting: fc,
		Dashboard:   db,
		Tracking:    tr,
		Reporting:   rp,
		Version:     Version,
		Checkers: []handlers.HealthChecker{
			handlers.CheckerFunc{CheckerName: "cache", Fn: cache.Ping},
		},
	})

	config.Watch(*configPath, func(next *config.Config) {
		logger.Info("configuration file changed; most settings apply on restart",
			logging.String("log_level", next.Log.Level),
			logging.Duration("forecast_ttl", next.Cache.ForecastTTL),
		)
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", logging.Err(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", logging.Err(err))
	}
	logger.Info("sitecast api server stopped")
}

// buildCache prefers redis and degrades to the pass-through cache when redis
// is disabled or unreachable at boot.
func buildCache(ctx context.Context, cfg *config.Config, logger logging.Logger) (rediscache.Cache, *rediscache.Client) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled; running without cache")
		return rediscache.NewNoop(), nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := rediscache.NewClient(dialCtx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unreachable; running without cache", logging.Err(err))
		return rediscache.NewNoop(), nil
	}
	cache := rediscache.NewCache(client, logger,
		rediscache.WithPrefix(cfg.Redis.KeyPrefix),
		rediscache.WithDefaultTTL(cfg.Cache.ForecastTTL),
	)
	return cache, client
}
