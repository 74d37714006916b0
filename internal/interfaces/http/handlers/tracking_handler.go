package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// TrackingHandler serves the permit and buyout screens.
type TrackingHandler struct {
	service *tracking.Service
	logger  logging.Logger
}

// NewTrackingHandler creates a TrackingHandler.
func NewTrackingHandler(svc *tracking.Service, log logging.Logger) *TrackingHandler {
	return &TrackingHandler{service: svc, logger: log.Named("tracking_handler")}
}

// RegisterRoutes mounts the tracking endpoints.
func (h *TrackingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/permits", h.Permits)
	rg.GET("/projects/:id/buyouts", h.Buyouts)
}

// Permits handles GET /projects/:id/permits?expiring_days=.
func (h *TrackingHandler) Permits(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	var window time.Duration
	if v := c.Query("expiring_days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			window = time.Duration(days) * 24 * time.Hour
		}
	}
	out, err := h.service.Permits(c.Request.Context(), id, window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Buyouts handles GET /projects/:id/buyouts.
func (h *TrackingHandler) Buyouts(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	out, err := h.service.Buyouts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
