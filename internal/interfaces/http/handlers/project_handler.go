package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// ProjectHandler serves the project list and detail endpoints.
type ProjectHandler struct {
	repo   project.Repository
	logger logging.Logger
}

// NewProjectHandler creates a ProjectHandler.
func NewProjectHandler(repo project.Repository, log logging.Logger) *ProjectHandler {
	return &ProjectHandler{repo: repo, logger: log.Named("project_handler")}
}

// RegisterRoutes mounts the project endpoints.
func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.List)
	rg.GET("/projects/:id", h.Get)
}

// List handles GET /projects.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.repo.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	proj, err := h.repo.GetProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proj)
}
