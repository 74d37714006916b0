package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// DashboardHandler serves role-scoped KPI snapshots.
type DashboardHandler struct {
	service *dashboard.Service
	logger  logging.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc *dashboard.Service, log logging.Logger) *DashboardHandler {
	return &DashboardHandler{service: svc, logger: log.Named("dashboard_handler")}
}

// RegisterRoutes mounts the dashboard endpoint.
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/dashboard", h.Snapshot)
}

// Snapshot handles GET /projects/:id/dashboard?role=.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	role, err := project.ParseRole(c.DefaultQuery("role", string(project.RoleProjectManager)))
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := h.service.Snapshot(c.Request.Context(), id, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
