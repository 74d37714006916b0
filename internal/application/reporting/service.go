// Package reporting assembles the project cost report: summary figures, the
// forecast table, and tracking rollups, exportable as JSON or CSV and
// deliverable by email.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/prometheus"
	"github.com/brickfield/sitecast/internal/infrastructure/notify"
	"github.com/brickfield/sitecast/pkg/errors"
)

// Summary carries the report's headline figures.
type Summary struct {
	ContractValue   float64 `json:"contractValue"`
	TotalBudget     float64 `json:"totalBudget"`
	ActualsToDate   float64 `json:"actualsToDate"`
	ForecastAtDone  float64 `json:"forecastAtCompletion"`
	RemainingBudget float64 `json:"remainingBudget"`
	PermitsApproved int     `json:"permitsApproved"`
	PermitsPending  int     `json:"permitsPending"`
	BuyoutVariance  float64 `json:"buyoutVariance"`
}

// Report is the assembled project cost report.
type Report struct {
	ReportID    uuid.UUID                    `json:"reportId"`
	ProjectID   uuid.UUID                    `json:"projectId"`
	ProjectName string                       `json:"projectName"`
	Client      string                       `json:"client"`
	GeneratedAt time.Time                    `json:"generatedAt"`
	Summary     Summary                      `json:"summary"`
	Forecast    *forecasting.ProjectForecast `json:"forecast"`
	Permits     []project.Permit             `json:"permits"`
	Buyouts     []project.Buyout             `json:"buyouts"`
}

// Service assembles and delivers reports.
type Service struct {
	repo        project.Repository
	forecasting *forecasting.Service
	tracking    *tracking.Service
	mailer      notify.Mailer
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
	now         func() time.Time
}

// NewService wires the reporting service.  Pass nil for time.Now.
func NewService(
	repo project.Repository,
	fc *forecasting.Service,
	tr *tracking.Service,
	mailer notify.Mailer,
	metrics *prometheus.AppMetrics,
	log logging.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:        repo,
		forecasting: fc,
		tracking:    tr,
		mailer:      mailer,
		metrics:     metrics,
		logger:      log.Named("reporting"),
		now:         now,
	}
}

// Assemble builds the full report for a project.
func (s *Service) Assemble(ctx context.Context, projectID uuid.UUID) (*Report, error) {
	proj, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	table, err := s.forecasting.ProjectForecast(ctx, projectID, "")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportBuildFailed, "forecast table")
	}
	permits, err := s.tracking.Permits(ctx, projectID, 0)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportBuildFailed, "permits")
	}
	buyouts, err := s.tracking.Buyouts(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportBuildFailed, "buyouts")
	}

	summary := Summary{
		ContractValue:   proj.ContractValue,
		PermitsApproved: permits.Counts[project.PermitApproved],
		PermitsPending:  permits.Counts[project.PermitPending],
		BuyoutVariance:  buyouts.TotalVariance,
	}
	for _, line := range table.Lines {
		summary.TotalBudget += line.TotalBudget
	}
	for _, pv := range table.Totals {
		summary.ActualsToDate += pv.ActualCost
		summary.ForecastAtDone += pv.CurrentForecast
	}
	summary.RemainingBudget = summary.TotalBudget - summary.ActualsToDate

	report := &Report{
		ReportID:    uuid.New(),
		ProjectID:   proj.ID,
		ProjectName: proj.Name,
		Client:      proj.Client,
		GeneratedAt: s.now(),
		Summary:     summary,
		Forecast:    table,
		Permits:     permits.Permits,
		Buyouts:     buyouts.Buyouts,
	}
	s.metrics.ReportsGeneratedTotal.WithLabelValues("json").Inc()
	return report, nil
}

// Send assembles the report, renders the CSV attachment, and delivers it to
// the recipients.
func (s *Service) Send(ctx context.Context, projectID uuid.UUID, recipients []string) (*Report, error) {
	report, err := s.Assemble(ctx, projectID)
	if err != nil {
		return nil, err
	}
	csvData, err := s.ExportCSV(ctx, projectID)
	if err != nil {
		return nil, err
	}

	msg := notify.Message{
		To:      recipients,
		Subject: fmt.Sprintf("Cost report: %s", report.ProjectName),
		Body: fmt.Sprintf(
			"Cost report for %s generated %s.\nForecast at completion: %.2f against a budget of %.2f.",
			report.ProjectName,
			report.GeneratedAt.Format("January 2, 2006"),
			report.Summary.ForecastAtDone,
			report.Summary.TotalBudget,
		),
		Attachments: []notify.Attachment{
			{Filename: "report.csv", ContentType: "text/csv", Data: csvData},
		},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.metrics.ReportMailTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	s.metrics.ReportMailTotal.WithLabelValues("sent").Inc()
	return report, nil
}
