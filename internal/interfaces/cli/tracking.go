package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/brickfield/sitecast/internal/application/tracking"
)

func newPermitsCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	var expiringDays int

	cmd := &cobra.Command{
		Use:   "permits <project>",
		Short: "List the permits filed for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			out, err := deps.Tracking.Permits(cmd.Context(), proj.ID, time.Duration(expiringDays)*24*time.Hour)
			if err != nil {
				return err
			}
			for _, p := range out.ExpiringSoon {
				cmd.PrintErrf("warning: %s permit %s expires %s\n", p.Type, p.Number, p.ExpiryDate.Format("2006-01-02"))
			}
			return printResult(cmd, opts, permitTable(*out))
		},
	}
	cmd.Flags().IntVar(&expiringDays, "expiring-days", 0, "flag permits expiring within this many days (default 90)")
	return cmd
}

func newBuyoutsCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "buyouts <project>",
		Short: "List the subcontract buyout packages for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			out, err := deps.Tracking.Buyouts(cmd.Context(), proj.ID)
			if err != nil {
				return err
			}
			return printResult(cmd, opts, buyoutTable(*out))
		},
	}
}

type permitTable tracking.PermitList

func (t permitTable) TableHeaders() []string {
	return []string{"TYPE", "NUMBER", "AUTHORITY", "STATUS", "EXPIRES"}
}

func (t permitTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Permits))
	for _, p := range t.Permits {
		expires := ""
		if !p.ExpiryDate.IsZero() {
			expires = p.ExpiryDate.Format("2006-01-02")
		}
		rows = append(rows, []string{p.Type, p.Number, p.Authority, string(p.Status), expires})
	}
	return rows
}

type buyoutTable tracking.BuyoutList

func (t buyoutTable) TableHeaders() []string {
	return []string{"PACKAGE", "VENDOR", "STATUS", "BUDGET", "AWARD", "VARIANCE"}
}

func (t buyoutTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Buyouts))
	for _, b := range t.Buyouts {
		rows = append(rows, []string{
			b.Package, b.Vendor, string(b.Status),
			money(b.BudgetValue), money(b.AwardValue), money(b.Variance()),
		})
	}
	return rows
}
