package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/domain/forecast"
)

func newForecastCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	var method string

	cmd := &cobra.Command{
		Use:   "forecast <project>",
		Short: "Show the monthly cost forecast table for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			table, err := deps.Forecasting.ProjectForecast(cmd.Context(), proj.ID, method)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, forecastTable(*table))
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "override the distribution curve for every line")

	cmd.AddCommand(newForecastPreviewCmd(deps, opts))
	return cmd
}

func newForecastPreviewCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	var (
		budget string
		start  string
		end    string
		method string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Distribute a hypothetical budget without touching any project",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := forecasting.PreviewRequest{
				TotalBudget: forecast.ParseAmount(budget),
				Method:      method,
			}
			if t, err := time.Parse("2006-01-02", start); err == nil {
				req.StartDate = t
			}
			if t, err := time.Parse("2006-01-02", end); err == nil {
				req.EndDate = t
			}
			out := deps.Forecasting.Preview(cmd.Context(), req)
			for _, warning := range out.Warnings {
				cmd.PrintErrln("warning:", warning)
			}
			return printResult(cmd, opts, previewTable(out))
		},
	}
	cmd.Flags().StringVar(&budget, "budget", "", "total budget, plain or currency formatted (required)")
	cmd.Flags().StringVar(&start, "start", "", "project start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "project end date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&method, "method", "linear", "distribution curve (linear, front_loaded, back_loaded, bell_curve)")
	cmd.MarkFlagRequired("budget")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

type forecastTable forecasting.ProjectForecast

func (t forecastTable) TableHeaders() []string {
	return []string{"PERIOD", "ACTUAL", "ORIGINAL", "CURRENT"}
}

func (t forecastTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Totals))
	for _, pv := range t.Totals {
		rows = append(rows, []string{
			pv.Label, money(pv.ActualCost), money(pv.OriginalForecast), money(pv.CurrentForecast),
		})
	}
	return rows
}

type previewTable forecasting.PreviewResult

func (t previewTable) TableHeaders() []string {
	return []string{"PERIOD", "ACTUAL", "ORIGINAL", "CURRENT"}
}

func (t previewTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Periods))
	for _, pv := range t.Periods {
		rows = append(rows, []string{
			pv.Label, money(pv.ActualCost), money(pv.OriginalForecast), money(pv.CurrentForecast),
		})
	}
	return rows
}
