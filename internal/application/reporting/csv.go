package reporting

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/google/uuid"

	"github.com/brickfield/sitecast/pkg/errors"
)

// ExportCSV renders the project's forecast table as CSV: one row per budget
// line and value kind (actual, original, current), one column per period,
// with a trailing totals block.
func (s *Service) ExportCSV(ctx context.Context, projectID uuid.UUID) ([]byte, error) {
	table, err := s.forecasting.ProjectForecast(ctx, projectID, "")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"cost_code", "description", "method", "kind", "total_budget"}
	for _, pv := range table.Totals {
		header = append(header, pv.Period)
	}
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportExportFailed, "csv header")
	}

	writeRow := func(costCode, description, method, kind, budget string, pick func(i int) float64) error {
		row := []string{costCode, description, method, kind, budget}
		for i := range table.Totals {
			row = append(row, cents(pick(i)))
		}
		return w.Write(row)
	}

	for _, line := range table.Lines {
		line := line
		budget := cents(line.TotalBudget)
		rows := []struct {
			kind string
			pick func(i int) float64
		}{
			{"actual", func(i int) float64 { return line.Periods[i].ActualCost }},
			{"original_forecast", func(i int) float64 { return line.Periods[i].OriginalForecast }},
			{"current_forecast", func(i int) float64 { return line.Periods[i].CurrentForecast }},
		}
		for _, r := range rows {
			if err := writeRow(line.CostCode, line.Description, line.Method, r.kind, budget, r.pick); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeReportExportFailed, "csv row")
			}
		}
	}

	totalBudget := 0.0
	for _, line := range table.Lines {
		totalBudget += line.TotalBudget
	}
	if err := writeRow("TOTAL", "", "", "current_forecast", cents(totalBudget), func(i int) float64 {
		return table.Totals[i].CurrentForecast
	}); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportExportFailed, "csv totals")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeReportExportFailed, "csv flush")
	}
	s.metrics.ReportsGeneratedTotal.WithLabelValues("csv").Inc()
	return buf.Bytes(), nil
}

// cents formats a monetary value with two decimals.
func cents(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
