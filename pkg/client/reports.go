package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ReportsClient covers the report endpoints.
type ReportsClient struct {
	client *Client
}

// ReportSummary carries the headline figures of a cost report.
type ReportSummary struct {
	ContractValue   float64 `json:"contractValue"`
	TotalBudget     float64 `json:"totalBudget"`
	ActualsToDate   float64 `json:"actualsToDate"`
	ForecastAtDone  float64 `json:"forecastAtCompletion"`
	RemainingBudget float64 `json:"remainingBudget"`
	PermitsApproved int     `json:"permitsApproved"`
	PermitsPending  int     `json:"permitsPending"`
	BuyoutVariance  float64 `json:"buyoutVariance"`
}

// Report is the assembled cost report.
type Report struct {
	ReportID    uuid.UUID        `json:"reportId"`
	ProjectID   uuid.UUID        `json:"projectId"`
	ProjectName string           `json:"projectName"`
	Client      string           `json:"client"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Summary     ReportSummary    `json:"summary"`
	Forecast    *ProjectForecast `json:"forecast"`
	Permits     []Permit         `json:"permits"`
	Buyouts     []Buyout         `json:"buyouts"`
}

// SendResult acknowledges an accepted report delivery.
type SendResult struct {
	ReportID   uuid.UUID `json:"reportId"`
	Recipients []string  `json:"recipients"`
}

// Get assembles the full report for a project.
func (rc *ReportsClient) Get(ctx context.Context, projectID uuid.UUID) (*Report, error) {
	var out Report
	if err := rc.client.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/projects/%s/report", projectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CSV fetches the forecast table as CSV bytes.
func (rc *ReportsClient) CSV(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	return rc.client.doRaw(ctx, http.MethodGet,
		fmt.Sprintf("/api/v1/projects/%s/report.csv", projectID), nil, "text/csv")
}

// Send emails the report with its CSV attachment to the recipients.
func (rc *ReportsClient) Send(ctx context.Context, projectID uuid.UUID, recipients []string) (*SendResult, error) {
	body := map[string]interface{}{"recipients": recipients}
	var out SendResult
	if err := rc.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/report/send", projectID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
