// Package http assembles the gin engine and HTTP server of the reporting
// API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/reporting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/config"
	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/interfaces/http/handlers"
	"github.com/brickfield/sitecast/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config      *config.Config
	Logger      logging.Logger
	Collector   *prometheus.Collector
	Metrics     *prometheus.AppMetrics
	Projects    project.Repository
	Forecasting *forecasting.Service
	Dashboard   *dashboard.Service
	Tracking    *tracking.Service
	Reporting   *reporting.Service
	Version     string
	Checkers    []handlers.HealthChecker
}

// NewRouter builds the fully-wired gin engine.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(deps.Config.Server.Mode))
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.Server.CORSOrigins))
	if deps.Config.Metrics.Enabled {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	handlers.NewHealthHandler(deps.Version, deps.Checkers...).RegisterRoutes(r)

	api := r.Group("/api/v1")
	handlers.NewProjectHandler(deps.Projects, deps.Logger).RegisterRoutes(api)
	handlers.NewForecastHandler(deps.Forecasting, deps.Logger).RegisterRoutes(api)
	handlers.NewDashboardHandler(deps.Dashboard, deps.Logger).RegisterRoutes(api)
	handlers.NewTrackingHandler(deps.Tracking, deps.Logger).RegisterRoutes(api)
	handlers.NewReportHandler(deps.Reporting, deps.Logger).RegisterRoutes(api)

	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
