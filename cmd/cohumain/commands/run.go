package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ashita-ai/cohumain/internal/model"
	"github.com/ashita-ai/cohumain/internal/team"
)

var runFlags struct {
	file       string
	task       string
	complexity string
	stakes     string
	human      bool
	summary    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute tasks and print the results",
	Long: `Executes every task in the team file, or a single task given with --task,
and prints each TaskResult as JSON. With --summary, prints one line per task.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), runFlags.file)
		if err != nil {
			return err
		}
		defer s.close()

		tasks := s.team.Tasks
		if runFlags.task != "" {
			tc := map[string]any{}
			if runFlags.complexity != "" {
				tc[model.ContextComplexity] = runFlags.complexity
			}
			if runFlags.stakes != "" {
				tc[model.ContextStakes] = runFlags.stakes
			}
			tasks = []team.Task{{Task: runFlags.task, Context: tc, HumanInLoop: runFlags.human}}
		}
		if len(tasks) == 0 {
			return out.Error("No tasks to run", "The team file defines no tasks and --task was not given.",
				[]string{"Add a tasks section to the team file", "Pass --task \"...\""})
		}

		results, err := runTasks(cmd.Context(), s.fw, tasks)
		if err != nil {
			return out.Error("Task execution interrupted", err.Error(), nil)
		}

		if runFlags.summary {
			for _, r := range results {
				out.TaskSummary(r)
			}
			return nil
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	addTeamFlag(runCmd, &runFlags.file)
	runCmd.Flags().StringVar(&runFlags.task, "task", "", "run this task instead of the team's task list")
	runCmd.Flags().StringVar(&runFlags.complexity, "complexity", "", "task complexity (\"high\" lowers confidence)")
	runCmd.Flags().StringVar(&runFlags.stakes, "stakes", "", "task stakes: low, medium, or high")
	runCmd.Flags().BoolVar(&runFlags.human, "human", false, "require human review of the result")
	runCmd.Flags().BoolVar(&runFlags.summary, "summary", false, "print one line per task instead of JSON")
	rootCmd.AddCommand(runCmd)
}
