package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// ForecastsClient covers the forecast table and preview endpoints.
type ForecastsClient struct {
	client *Client
}

// PeriodValue is one month's cell in a forecast row.
type PeriodValue struct {
	Period           string  `json:"period"`
	Label            string  `json:"label"`
	ActualCost       float64 `json:"actualCost"`
	OriginalForecast float64 `json:"originalForecast"`
	CurrentForecast  float64 `json:"currentForecast"`
}

// LineForecast is one budget line's distributed row.
type LineForecast struct {
	BudgetLineID uuid.UUID     `json:"budgetLineId"`
	CostCode     string        `json:"costCode"`
	Description  string        `json:"description"`
	Method       string        `json:"method"`
	TotalBudget  float64       `json:"totalBudget"`
	Periods      []PeriodValue `json:"periods"`
	Warnings     []string      `json:"warnings,omitempty"`
}

// ProjectForecast is the full forecast table for a project.
type ProjectForecast struct {
	ProjectID   uuid.UUID      `json:"projectId"`
	ProjectName string         `json:"projectName"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Lines       []LineForecast `json:"lines"`
	Totals      []PeriodValue  `json:"totals"`
}

// PreviewRequest distributes a hypothetical budget.  TotalBudget accepts a
// plain number or a currency-formatted string; dates are YYYY-MM-DD.
type PreviewRequest struct {
	TotalBudget     string             `json:"totalBudget"`
	StartDate       string             `json:"startDate"`
	EndDate         string             `json:"endDate"`
	Method          string             `json:"method"`
	ActualsByPeriod map[string]float64 `json:"actualsByPeriod,omitempty"`
	Now             string             `json:"now,omitempty"`
}

// PreviewResult is the preview endpoint payload.
type PreviewResult struct {
	Method      string        `json:"method"`
	TotalBudget float64       `json:"totalBudget"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Periods     []PeriodValue `json:"periods"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// ProjectForecast fetches the forecast table; method optionally overrides the
// curve on every line.
func (fc *ForecastsClient) ProjectForecast(ctx context.Context, projectID uuid.UUID, method string) (*ProjectForecast, error) {
	path := fmt.Sprintf("/api/v1/projects/%s/forecast", projectID)
	if method != "" {
		path += "?method=" + url.QueryEscape(method)
	}
	var out ProjectForecast
	if err := fc.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Preview runs a standalone distribution without touching any project.
func (fc *ForecastsClient) Preview(ctx context.Context, req PreviewRequest) (*PreviewResult, error) {
	var out PreviewResult
	if err := fc.client.do(ctx, http.MethodPost, "/api/v1/forecasts/preview", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
