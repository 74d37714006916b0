package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/domain/forecast"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

// ForecastHandler serves forecast tables and ad-hoc previews.
type ForecastHandler struct {
	service *forecasting.Service
	logger  logging.Logger
}

// NewForecastHandler creates a ForecastHandler.
func NewForecastHandler(svc *forecasting.Service, log logging.Logger) *ForecastHandler {
	return &ForecastHandler{service: svc, logger: log.Named("forecast_handler")}
}

// RegisterRoutes mounts the forecast endpoints.
func (h *ForecastHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/forecast", h.ProjectForecast)
	rg.POST("/forecasts/preview", h.Preview)
}

// ProjectForecast handles GET /projects/:id/forecast?method=.
func (h *ForecastHandler) ProjectForecast(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	out, err := h.service.ProjectForecast(c.Request.Context(), id, c.Query("method"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// previewRequest is the POST /forecasts/preview body.  Dates use ISO-8601
// day precision; the budget accepts a number or a currency string.
type previewRequest struct {
	TotalBudget forecast.Amount    `json:"totalBudget"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Method      string             `json:"method"`
	Actuals     map[string]float64 `json:"actualsByPeriod"`
	Now         string             `json:"now"`
}

// Preview handles POST /forecasts/preview.
func (h *ForecastHandler) Preview(c *gin.Context) {
	var body previewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid preview request"))
		return
	}

	// Unparseable dates stay zero; the engine reports the degraded range
	// in the response warnings rather than failing the request.
	start, _ := time.Parse("2006-01-02", body.StartDate)
	end, _ := time.Parse("2006-01-02", body.EndDate)
	var now time.Time
	if body.Now != "" {
		now, _ = time.Parse("2006-01-02", body.Now)
	}

	out := h.service.Preview(c.Request.Context(), forecasting.PreviewRequest{
		TotalBudget: body.TotalBudget,
		StartDate:   start,
		EndDate:     end,
		Method:      body.Method,
		Actuals:     body.Actuals,
		Now:         now,
	})
	c.JSON(http.StatusOK, out)
}
