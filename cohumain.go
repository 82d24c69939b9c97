// Package cohumain is the public API of the CoHumAIn multi-agent
// orchestration core. A Framework holds a registry of agents, runs tasks
// through them, and explains each outcome on three levels: individual
// reasoning traces, coordination decisions, and a collective explanation,
// together with a safety assessment and the human oversight level the
// result warrants.
//
//	fw := cohumain.New(
//	    cohumain.WithDomain("finance"),
//	    cohumain.WithSafetyMode(cohumain.SafetyStrict),
//	    cohumain.WithRegulatoryFramework("SEC"),
//	)
//	alice, err := cohumain.NewAgent(cohumain.AgentSpec{Name: "Alice", Role: "Analyst", Expertise: 0.9})
//	if err != nil { ... }
//	fw.AddAgent(alice)
//	result, err := fw.ExecuteTask(ctx, cohumain.TaskInput{Task: "Assess portfolio risk"})
package cohumain

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ashita-ai/cohumain/internal/compliance"
	"github.com/ashita-ai/cohumain/internal/model"
	"github.com/ashita-ai/cohumain/internal/service/orchestration"
)

// TaskInput is one task submission.
type TaskInput struct {
	Task string
	// Context carries "complexity" and "stakes"; other keys are ignored.
	// Nil is treated as empty.
	Context TaskContext
	// HumanInLoop forces RequiresHumanReview on the result.
	HumanInLoop bool
}

// Framework is the orchestrator. It is safe for concurrent use; tasks are
// executed one at a time.
type Framework struct {
	domain              string
	safetyMode          SafetyMode
	regulatoryFramework string
	stakeholderType     string
	hooks               []TaskHook
	svc                 *orchestration.Service
	logger              *slog.Logger

	mu           sync.RWMutex
	agents       []*Agent
	history      []TaskResult
	coordination []CoordinationDecision
}

// New creates a Framework with an empty registry and history.
func New(opts ...Option) *Framework {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	svc := orchestration.New(orchestration.Settings{
		SafetyMode:      o.safetyMode,
		Allocator:       o.allocator,
		Checker:         toChecker(o.policy, o),
		ParallelTraces:  o.parallelTraces,
		EnforceTimeouts: o.agentTimeouts,
	}, o.logger)

	return &Framework{
		domain:              o.domain,
		safetyMode:          o.safetyMode,
		regulatoryFramework: o.regulatoryFramework,
		stakeholderType:     o.stakeholderType,
		hooks:               slices.Clone(o.taskHooks),
		svc:                 svc,
		logger:              o.logger,
	}
}

// Domain returns the configured domain.
func (f *Framework) Domain() string { return f.domain }

// SafetyMode returns the configured safety mode.
func (f *Framework) SafetyMode() SafetyMode { return f.safetyMode }

// RegulatoryFramework returns the configured regulatory framework label, or
// "" when none is set.
func (f *Framework) RegulatoryFramework() string { return f.regulatoryFramework }

// StakeholderType returns the configured stakeholder type.
func (f *Framework) StakeholderType() string { return f.stakeholderType }

// ConfidenceThreshold is the delegation threshold for the safety mode.
func (f *Framework) ConfidenceThreshold() float64 {
	return f.safetyMode.ConfidenceThreshold()
}

// InterventionThresholds returns the full threshold set for the safety mode.
func (f *Framework) InterventionThresholds() InterventionThresholds {
	return model.ThresholdsFor(f.safetyMode)
}

// AddAgent appends a to the registry. Registration order is execution order.
// Names are not deduplicated.
func (f *Framework) AddAgent(a *Agent) {
	if a == nil {
		return
	}
	f.mu.Lock()
	f.agents = append(f.agents, a)
	f.mu.Unlock()
	f.logger.Debug("cohumain: agent registered", "agent", a.Name, "role", a.Role)
}

// AddAgents appends agents in order.
func (f *Framework) AddAgents(agents ...*Agent) {
	for _, a := range agents {
		f.AddAgent(a)
	}
}

// Agents returns the registered agents in registration order.
func (f *Framework) Agents() []*Agent {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.agents)
}

// ExecuteTask runs the task through every registered agent and records the
// result. The error is non-nil only when ctx is done before or during trace
// generation, in which case nothing is recorded; safety problems are
// reported in the result.
func (f *Framework) ExecuteTask(ctx context.Context, in TaskInput) (TaskResult, error) {
	f.mu.Lock()
	result, err := f.svc.Run(ctx, f.agents, orchestration.Input{
		Task:        in.Task,
		Context:     in.Context,
		HumanInLoop: in.HumanInLoop,
	})
	if err != nil {
		f.mu.Unlock()
		return TaskResult{}, err
	}
	f.history = append(f.history, result)
	f.coordination = append(f.coordination, result.Level2Explanations...)
	f.mu.Unlock()

	for _, h := range f.hooks {
		if err := h.OnTaskExecuted(ctx, result); err != nil {
			f.logger.Warn("task hook OnTaskExecuted failed", "result_id", result.ID, "error", err)
		}
	}
	return result, nil
}

// TaskHistory returns every recorded result in execution order.
func (f *Framework) TaskHistory() []TaskResult {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.history)
}

// CoordinationHistory returns every coordination decision across all tasks.
func (f *Framework) CoordinationHistory() []CoordinationDecision {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.coordination)
}

// ComplianceReport summarizes the task history under standard.
func (f *Framework) ComplianceReport(standard string) ComplianceReport {
	f.mu.RLock()
	defer f.mu.RUnlock()

	agents := make([]compliance.AgentSummary, len(f.agents))
	for i, a := range f.agents {
		agents[i] = compliance.AgentSummary{
			Name:           a.Name,
			Role:           a.Role,
			Expertise:      a.Expertise,
			TasksCompleted: a.PerformanceMetrics().TasksCompleted,
		}
	}
	return compliance.Build(compliance.Input{
		Standard:            standard,
		RegulatoryFramework: f.regulatoryFramework,
		Domain:              f.domain,
		Agents:              agents,
		History:             f.history,
		Now:                 time.Now().UTC(),
	})
}

// GenerateComplianceReport renders the compliance report. format "json"
// yields indented JSON; any other format yields a text dump.
func (f *Framework) GenerateComplianceReport(standard, format string) (string, error) {
	return compliance.Render(f.ComplianceReport(standard), format)
}

// PerformanceSummary returns one row per registered agent.
func (f *Framework) PerformanceSummary() []AgentPerformance {
	f.mu.RLock()
	defer f.mu.RUnlock()

	rows := make([]AgentPerformance, len(f.agents))
	for i, a := range f.agents {
		m := a.PerformanceMetrics()
		rows[i] = AgentPerformance{
			Agent:         a.Name,
			Role:          a.Role,
			Expertise:     a.Expertise,
			Tasks:         m.TasksCompleted,
			AvgConfidence: m.AvgConfidence,
			Accuracy:      m.Accuracy,
		}
	}
	return rows
}
