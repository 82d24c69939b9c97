package commands

import (
	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a team definition",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTeam(validateFile)
		if err != nil {
			return err
		}
		out.Success("%s is valid: %d agents, %d tasks\n", validateFile, len(t.Agents), len(t.Tasks))
		return nil
	},
}

func init() {
	addTeamFlag(validateCmd, &validateFile)
	rootCmd.AddCommand(validateCmd)
}
