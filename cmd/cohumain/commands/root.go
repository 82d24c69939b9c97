package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashita-ai/cohumain/internal/config"
	"github.com/ashita-ai/cohumain/internal/printer"
)

var (
	version = "dev"

	// Populated by PersistentPreRunE for every subcommand.
	cfg    config.Config
	logger *slog.Logger
	out    = printer.New(os.Stdout, os.Stderr)
)

var rootCmd = &cobra.Command{
	Use:   "cohumain",
	Short: "CoHumAIn - explainable multi-agent orchestration",
	Long: `CoHumAIn runs a team of agents over tasks and explains every outcome on
three levels: individual reasoning traces, coordination decisions, and a
collective team explanation, together with a safety assessment and the level
of human oversight the result warrants.

Teams are described in YAML; framework defaults come from COHUMAIN_* environment
variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return out.Error("Invalid configuration", err.Error(),
				[]string{"Check the COHUMAIN_* environment variables and your .env file"})
		}
		cfg = c
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command. Errors are printed by the printer package,
// so Cobra's own error and usage output is silenced.
func Execute(ctx context.Context) error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, commit, date string) {
	version = v
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
}

func addTeamFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "team.yaml", "path to the team definition")
}
