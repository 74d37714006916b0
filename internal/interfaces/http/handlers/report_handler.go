package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/application/reporting"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

// ReportHandler serves assembled reports, CSV exports, and email delivery.
type ReportHandler struct {
	service *reporting.Service
	logger  logging.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc *reporting.Service, log logging.Logger) *ReportHandler {
	return &ReportHandler{service: svc, logger: log.Named("report_handler")}
}

// RegisterRoutes mounts the report endpoints.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/report", h.Get)
	rg.GET("/projects/:id/report.csv", h.GetCSV)
	rg.POST("/projects/:id/report/send", h.Send)
}

// Get handles GET /projects/:id/report.
func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	report, err := h.service.Assemble(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCSV handles GET /projects/:id/report.csv.
func (h *ReportHandler) GetCSV(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	data, err := h.service.ExportCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="report.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

type sendReportRequest struct {
	Recipients []string `json:"recipients"`
}

// Send handles POST /projects/:id/report/send.
func (h *ReportHandler) Send(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	var body sendReportRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid send request"))
		return
	}
	report, err := h.service.Send(c.Request.Context(), id, body.Recipients)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{
		"reportId":   report.ReportID,
		"recipients": body.Recipients,
	})
}
