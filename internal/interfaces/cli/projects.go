package cli

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/brickfield/sitecast/internal/domain/project"
	"github.com/brickfield/sitecast/pkg/errors"
)

func newProjectsCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List the projects in the portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := deps.Projects.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return printResult(cmd, opts, projectTable(projects))
		},
	}
}

type projectTable []project.Project

func (t projectTable) TableHeaders() []string {
	return []string{"ID", "NAME", "STATUS", "MANAGER", "CONTRACT"}
}

func (t projectTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, p := range t {
		rows = append(rows, []string{
			p.ID.String(), p.Name, string(p.Status), p.Manager, money(p.ContractValue),
		})
	}
	return rows
}

// resolveProject accepts either a project UUID or a case-insensitive name.
func resolveProject(ctx context.Context, deps Dependencies, arg string) (project.Project, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return deps.Projects.GetProject(ctx, id)
	}
	projects, err := deps.Projects.ListProjects(ctx)
	if err != nil {
		return project.Project{}, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, arg) {
			return p, nil
		}
	}
	return project.Project{}, errors.New(errors.ErrCodeProjectNotFound, "no project matches").WithDetail(arg)
}
