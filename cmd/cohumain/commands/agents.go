package commands

import (
	"github.com/spf13/cobra"

	"github.com/ashita-ai/cohumain/internal/compliance"
)

var agentsFile string

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Print the agent performance summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), agentsFile)
		if err != nil {
			return err
		}
		defer s.close()
		return compliance.WriteSummaryTable(cmd.OutOrStdout(), s.fw.PerformanceSummary())
	},
}

func init() {
	addTeamFlag(agentsCmd, &agentsFile)
	rootCmd.AddCommand(agentsCmd)
}
