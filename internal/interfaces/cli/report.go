package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newReportCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Assemble and deliver project cost reports",
	}
	cmd.AddCommand(
		newReportShowCmd(deps, opts),
		newReportCSVCmd(deps),
		newReportSendCmd(deps),
	)
	return cmd
}

func newReportShowCmd(deps Dependencies, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Print the full cost report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			report, err := deps.Reporting.Assemble(cmd.Context(), proj.ID)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
}

func newReportCSVCmd(deps Dependencies) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "csv <project>",
		Short: "Export the forecast table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			data, err := deps.Reporting.ExportCSV(cmd.Context(), proj.ID)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			cmd.Printf("wrote %d bytes to %s\n", len(data), outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "file", "f", "", "write to a file instead of stdout")
	return cmd
}

func newReportSendCmd(deps Dependencies) *cobra.Command {
	var recipients string

	cmd := &cobra.Command{
		Use:   "send <project>",
		Short: "Email the cost report with its CSV attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := resolveProject(cmd.Context(), deps, args[0])
			if err != nil {
				return err
			}
			to := splitRecipients(recipients)
			report, err := deps.Reporting.Send(cmd.Context(), proj.ID, to)
			if err != nil {
				return err
			}
			cmd.Printf("report %s sent to %s\n", report.ReportID, strings.Join(to, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&recipients, "to", "", "comma-separated recipient addresses (required)")
	cmd.MarkFlagRequired("to")
	return cmd
}

func splitRecipients(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
