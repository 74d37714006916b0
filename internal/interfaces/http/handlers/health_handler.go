package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports one dependency's liveness for the readiness probe.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a name and function to HealthChecker.
type CheckerFunc struct {
	CheckerName string
	Fn          func(ctx context.Context) error
}

func (c CheckerFunc) Name() string                    { return c.CheckerName }
func (c CheckerFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	version  string
	startAt  time.Time
	checkers []HealthChecker
}

// NewHealthHandler creates a HealthHandler over the given dependency checks.
func NewHealthHandler(version string, checkers ...HealthChecker) *HealthHandler {
	return &HealthHandler{version: version, startAt: time.Now(), checkers: checkers}
}

// RegisterRoutes mounts the probes at the engine root, outside /api/v1.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
}

// Liveness confirms process liveness only; it never consults dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startAt).Truncate(time.Second).String(),
	})
}

// Readiness checks every registered dependency; any failure yields 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(h.checkers))
	for _, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			deps[checker.Name()] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		deps[checker.Name()] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "dependencies": deps})
}
