package commands

import (
	"context"
	"fmt"

	"github.com/ashita-ai/cohumain"
	"github.com/ashita-ai/cohumain/internal/config"
	"github.com/ashita-ai/cohumain/internal/model"
	"github.com/ashita-ai/cohumain/internal/team"
	"github.com/ashita-ai/cohumain/internal/telemetry"
)

// session is a framework assembled from a team file and the environment.
type session struct {
	fw       *cohumain.Framework
	team     *team.Team
	shutdown telemetry.Shutdown
}

func (s *session) close() {
	_ = s.shutdown(context.Background())
}

func loadTeam(path string) (*team.Team, error) {
	t, err := team.Load(path)
	if err != nil {
		return nil, out.Error("Invalid team file", err.Error(),
			[]string{fmt.Sprintf("Fix %s and run 'cohumain validate -f %s'", path, path)})
	}
	return t, nil
}

// openSession loads the team, initializes telemetry, and registers agents.
func openSession(ctx context.Context, path string) (*session, error) {
	t, err := loadTeam(path)
	if err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Settings{
		Endpoint:    cfg.OTELEndpoint,
		ServiceName: cfg.ServiceName,
		Version:     version,
		Insecure:    cfg.OTELInsecure,
	})
	if err != nil {
		return nil, out.Error("Telemetry setup failed", err.Error(),
			[]string{"Unset OTEL_EXPORTER_OTLP_ENDPOINT to disable export"})
	}

	agents, err := t.BuildAgents(team.Defaults{
		MaxRetries: cfg.DefaultMaxRetries,
		Timeout:    cfg.DefaultAgentTimeout,
	})
	if err != nil {
		_ = shutdown(context.Background())
		return nil, out.Error("Invalid agent", err.Error(), nil)
	}

	fw := cohumain.New(frameworkOptions(cfg, t)...)
	fw.AddAgents(agents...)
	logger.Info("cohumain: team loaded",
		"version", version,
		"file", path,
		"agents", len(agents),
		"domain", fw.Domain(),
		"safety_mode", fw.SafetyMode(),
	)
	return &session{fw: fw, team: t, shutdown: shutdown}, nil
}

// frameworkOptions merges environment defaults with team overrides.
func frameworkOptions(c config.Config, t *team.Team) []cohumain.Option {
	pick := func(override, fallback string) string {
		if override != "" {
			return override
		}
		return fallback
	}
	parallel := c.ParallelTraces
	if t.Framework.ParallelTraces != nil {
		parallel = *t.Framework.ParallelTraces
	}
	opts := []cohumain.Option{
		cohumain.WithLogger(logger),
		cohumain.WithDomain(pick(t.Framework.Domain, c.Domain)),
		cohumain.WithSafetyMode(model.SafetyMode(pick(string(t.Framework.SafetyMode), string(c.SafetyMode)))),
		cohumain.WithRegulatoryFramework(pick(t.Framework.RegulatoryFramework, c.RegulatoryFramework)),
		cohumain.WithStakeholderType(pick(t.Framework.StakeholderType, c.StakeholderType)),
		cohumain.WithParallelTraces(parallel),
		cohumain.WithAgentTimeouts(c.EnforceAgentTimeouts),
	}
	if len(t.Principles) > 0 {
		opts = append(opts, cohumain.WithPrinciplePolicy(cohumain.KeywordPolicy(t.Principles)))
	}
	return opts
}

// runTasks executes the given tasks in order.
func runTasks(ctx context.Context, fw *cohumain.Framework, tasks []team.Task) ([]cohumain.TaskResult, error) {
	results := make([]cohumain.TaskResult, 0, len(tasks))
	for _, task := range tasks {
		r, err := fw.ExecuteTask(ctx, cohumain.TaskInput{
			Task:        task.Task,
			Context:     task.TaskContext(),
			HumanInLoop: task.HumanInLoop,
		})
		if err != nil {
			return results, fmt.Errorf("execute task %q: %w", task.Task, err)
		}
		results = append(results, r)
	}
	return results, nil
}
