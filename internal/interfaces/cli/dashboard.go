package cli

import (
	"github.com/spf13/cobra"

	"github.com/brickfield/sitecast/internal/application/dashboard"
	"github.com/brickfield/sitecast/internal/domain/project"
)

func newDashboardCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "dashboard <project>",
		Short: "Show the role-based dashboard widgets for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			parsed, err := project.ParseRole(role)
			if err != nil {
				return err
			}
			snap, err := deps.Dashboard.Snapshot(cmd.Context(), proj.ID, parsed)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, widgetTable(*snap))
		},
	}
	cmd.Flags().StringVar(&role, "role", "project_manager", "viewer role (executive, project_manager, superintendent, accountant)")
	return cmd
}

type widgetTable dashboard.Snapshot

func (t widgetTable) TableHeaders() []string {
	return []string{"WIDGET", "TITLE", "VALUE", "UNIT"}
}

func (t widgetTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Widgets))
	for _, w := range t.Widgets {
		rows = append(rows, []string{w.ID, w.Title, money(w.Value), w.Unit})
	}
	return rows
}
