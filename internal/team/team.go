// Package team loads a team definition (framework settings, agents,
// principle rules, and tasks) from YAML.
package team

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ashita-ai/cohumain/internal/agent"
	"github.com/ashita-ai/cohumain/internal/model"
)

// Team is the top-level structure of a team file.
type Team struct {
	Framework Framework `yaml:"framework"`
	// Principles maps a constitutional principle to the task terms that
	// violate it.
	Principles map[string][]string `yaml:"principles"`
	Agents     []agent.Spec        `yaml:"agents"`
	Tasks      []Task              `yaml:"tasks"`
}

// Framework holds framework-wide settings. Empty values fall back to the
// environment configuration.
type Framework struct {
	Domain              string           `yaml:"domain"`
	SafetyMode          model.SafetyMode `yaml:"safety_mode"`
	RegulatoryFramework string           `yaml:"regulatory_framework"`
	StakeholderType     string           `yaml:"stakeholder_type"`
	ParallelTraces      *bool            `yaml:"parallel_traces"`
}

// Task is one scripted task submission.
type Task struct {
	Task        string         `yaml:"task"`
	Context     map[string]any `yaml:"context"`
	HumanInLoop bool           `yaml:"human_in_loop"`
}

// Defaults fill agent tunables the file leaves unset.
type Defaults struct {
	MaxRetries int
	Timeout    time.Duration
}

// Load reads and validates a team file.
func Load(path string) (*Team, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator's CLI flag
	if err != nil {
		return nil, fmt.Errorf("failed to read team file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a team definition.
func Parse(data []byte) (*Team, error) {
	var t Team
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid team definition: %w", err)
	}
	return &t, nil
}

// Validate checks the team for structural errors.
func (t *Team) Validate() error {
	if t.Framework.SafetyMode != "" && !t.Framework.SafetyMode.Known() {
		return fmt.Errorf("framework.safety_mode: unknown mode '%s' (must be 'permissive', 'balanced', 'strict', or 'maximum')", t.Framework.SafetyMode)
	}
	if len(t.Agents) == 0 {
		return fmt.Errorf("no agents defined")
	}

	seen := make(map[string]int, len(t.Agents))
	declared := make(map[string]bool)
	for i, spec := range t.Agents {
		if prev, dup := seen[spec.Name]; dup {
			return fmt.Errorf("duplicate agent name '%s' (agents[%d] and agents[%d])", spec.Name, prev, i)
		}
		seen[spec.Name] = i
		if err := applyDefaults(spec, Defaults{}).Validate(); err != nil {
			return fmt.Errorf("agents[%d]: %w", i, err)
		}
		for _, p := range spec.ConstitutionalPrinciples {
			declared[p] = true
		}
	}

	for principle := range t.Principles {
		if !declared[principle] {
			return fmt.Errorf("principles: rule for '%s' matches no agent principle", principle)
		}
	}
	for i, task := range t.Tasks {
		if task.Task == "" {
			return fmt.Errorf("tasks[%d]: task is required", i)
		}
	}
	return nil
}

// BuildAgents constructs the team's agents in file order.
func (t *Team) BuildAgents(d Defaults, opts ...agent.Option) ([]*agent.Agent, error) {
	out := make([]*agent.Agent, 0, len(t.Agents))
	for _, spec := range t.Agents {
		a, err := agent.New(applyDefaults(spec, d), opts...)
		if err != nil {
			return nil, fmt.Errorf("build agent '%s': %w", spec.Name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// TaskContext returns the task's context in pipeline form.
func (t Task) TaskContext() model.TaskContext {
	tc := make(model.TaskContext, len(t.Context))
	for k, v := range t.Context {
		tc[k] = v
	}
	return tc
}

func applyDefaults(spec agent.Spec, d Defaults) agent.Spec {
	if spec.MaxRetries == 0 {
		spec.MaxRetries = d.MaxRetries
	}
	if spec.MaxRetries == 0 {
		spec.MaxRetries = agent.DefaultMaxRetries
	}
	if spec.Timeout == 0 {
		spec.Timeout = d.Timeout
	}
	if spec.Timeout == 0 {
		spec.Timeout = agent.DefaultTimeout
	}
	return spec
}
