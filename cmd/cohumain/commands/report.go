package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashita-ai/cohumain/internal/compliance"
)

var reportFlags struct {
	file     string
	standard string
	format   string
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Execute the team's tasks and print a compliance report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), reportFlags.file)
		if err != nil {
			return err
		}
		defer s.close()

		if _, err := runTasks(cmd.Context(), s.fw, s.team.Tasks); err != nil {
			return out.Error("Task execution interrupted", err.Error(), nil)
		}
		report, err := s.fw.GenerateComplianceReport(reportFlags.standard, reportFlags.format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	addTeamFlag(reportCmd, &reportFlags.file)
	reportCmd.Flags().StringVar(&reportFlags.standard, "standard", compliance.DefaultStandard, "compliance standard label")
	reportCmd.Flags().StringVar(&reportFlags.format, "format", compliance.FormatJSON, "output format: json or text")
	rootCmd.AddCommand(reportCmd)
}
