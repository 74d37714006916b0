// Package cli implements the sitecast command line interface.  Commands run
// the application services in process against the configured store, so the
// CLI works without a running API server.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/application/forecasting"
	"github.com/brickfield/sitecast/internal/application/reporting"
	"github.com/brickfield/sitecast/internal/application/tracking"
	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Dependencies aggregates the services the commands run against.  The entry
// point wires them after loading configuration.
type Dependencies struct {
	Logger      logging.Logger
	Projects    project.Repository
	Forecasting *forecasting.Service
	Dashboard   *dashboard.Service
	Tracking    *tracking.Service
	Reporting   *reporting.Service
}

type rootOptions struct {
	output string
}

// NewRootCommand builds the command tree over the given dependencies.
func NewRootCommand(deps Dependencies) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "sitecast",
		Short:         "Construction cost forecasting and project reporting",
		Long:          "sitecast distributes project budgets across monthly periods using\nbusiness-day weighted curve shapes, blends in recorded actuals, and\nassembles role-based dashboards and cost reports.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")

	cmd.AddCommand(
		newProjectsCmd(deps, opts),
		newForecastCmd(deps, opts),
		newDashboardCmd(deps, opts),
		newPermitsCmd(deps, opts),
		newBuyoutsCmd(deps, opts),
		newReportCmd(deps, opts),
	)
	return cmd
}

// printResult renders data according to the --output flag.  Tables need a
// tableProvider; anything else falls back to JSON.
func printResult(cmd *cobra.Command, opts *rootOptions, data interface{}) error {
	if strings.EqualFold(opts.output, "json") {
		return printJSON(cmd, data)
	}
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(cmd.OutOrStdout(), formatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printJSON(cmd, data)
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

func formatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(padRight(cell, widths[i]))
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
