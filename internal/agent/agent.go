// Package agent implements a team member: its identity, tunables, and the
// Level-1 reasoning traces it produces for each task.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ashita-ai/cohumain/internal/model"
	"github.com/ashita-ai/cohumain/internal/principles"
)

// Defaults applied by New when a Spec leaves the field zero.
const (
	DefaultMaxRetries = 3
	DefaultTimeout    = 60 * time.Second
)

// Confidence multipliers.
const (
	complexityPenalty = 0.9
	violationPenalty  = 0.8
)

// ErrInvalidSpec is wrapped by every validation error returned from New.
var ErrInvalidSpec = errors.New("invalid agent spec")

// Spec is the immutable part of an agent: identity and tunables.
type Spec struct {
	Name                     string        `yaml:"name" json:"name"`
	Role                     string        `yaml:"role" json:"role"`
	Expertise                float64       `yaml:"expertise" json:"expertise"`
	ConfidenceThreshold      float64       `yaml:"confidence_threshold" json:"confidence_threshold"`
	Capabilities             []string      `yaml:"capabilities" json:"capabilities"`
	ConstitutionalPrinciples []string      `yaml:"constitutional_principles" json:"constitutional_principles"`
	MaxRetries               int           `yaml:"max_retries,omitempty" json:"max_retries"`
	Timeout                  time.Duration `yaml:"timeout,omitempty" json:"timeout"`
}

// withDefaults fills zero-valued tunables.
func (s Spec) withDefaults() Spec {
	if s.MaxRetries == 0 {
		s.MaxRetries = DefaultMaxRetries
	}
	if s.Timeout == 0 {
		s.Timeout = DefaultTimeout
	}
	return s
}

// Validate checks the spec's invariants.
func (s Spec) Validate() error {
	if err := model.ValidateAgentName(s.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if err := model.ValidateUnitInterval("expertise", s.Expertise); err != nil {
		return fmt.Errorf("%w: agent %q: %w", ErrInvalidSpec, s.Name, err)
	}
	if err := model.ValidateUnitInterval("confidence_threshold", s.ConfidenceThreshold); err != nil {
		return fmt.Errorf("%w: agent %q: %w", ErrInvalidSpec, s.Name, err)
	}
	if s.MaxRetries < 1 {
		return fmt.Errorf("%w: agent %q: max_retries must be at least 1", ErrInvalidSpec, s.Name)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: agent %q: timeout must be positive", ErrInvalidSpec, s.Name)
	}
	return nil
}

// Agent is a registered team member. Spec fields must not be modified after
// construction; history and metrics are safe for concurrent use.
//
// ConfidenceThreshold is carried as metadata only. Delegation is gated by the
// framework-wide threshold derived from the safety mode.
type Agent struct {
	Spec

	checker *principles.Checker

	mu      sync.Mutex
	history []model.ReasoningTrace
	metrics model.PerformanceMetrics
}

// Option configures an Agent.
type Option func(*Agent)

// WithChecker gives the agent its own principle checker, taking precedence
// over any checker supplied by the framework.
func WithChecker(c *principles.Checker) Option {
	return func(a *Agent) { a.checker = c }
}

// New validates spec (after applying defaults) and returns an agent with an
// empty history and zeroed performance metrics.
func New(spec Spec, opts ...Option) (*Agent, error) {
	spec = spec.withDefaults()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec.Capabilities = cloneStrings(spec.Capabilities)
	spec.ConstitutionalPrinciples = cloneStrings(spec.ConstitutionalPrinciples)

	a := &Agent{Spec: spec}
	for _, fn := range opts {
		fn(a)
	}
	return a, nil
}

// GenerateReasoningTrace produces the agent's Level-1 explanation for task
// using the agent's own checker (or the default policy) and appends it to
// the agent's history.
func (a *Agent) GenerateReasoningTrace(ctx context.Context, task string, tc model.TaskContext) model.ReasoningTrace {
	return a.TraceWith(ctx, nil, task, tc)
}

// TraceWith is GenerateReasoningTrace with a fallback checker used when the
// agent has none of its own.
func (a *Agent) TraceWith(ctx context.Context, fallback *principles.Checker, task string, tc model.TaskContext) model.ReasoningTrace {
	checker := a.checker
	if checker == nil {
		checker = fallback
	}
	if checker == nil {
		checker = principles.NewChecker(nil, nil)
	}

	check := checker.Check(ctx, a.ConstitutionalPrinciples, task, tc, a.MaxRetries)
	trace := model.ReasoningTrace{
		ID:             uuid.New(),
		Agent:          a.Name,
		Task:           task,
		Thought:        model.TraceThoughtPrefix + task,
		Action:         model.TraceAction,
		Observation:    model.TraceObservation,
		Confidence:     Confidence(a.Expertise, tc.HighComplexity(), check.AllSatisfied),
		PrincipleCheck: check,
		Timestamp:      time.Now().UTC(),
	}

	a.mu.Lock()
	a.history = append(a.history, trace)
	a.mu.Unlock()
	return trace
}

// Confidence is the agent's self-assessed confidence for a task: expertise,
// reduced for high complexity and for principle violations, clamped to [0, 1].
func Confidence(expertise float64, highComplexity, principlesSatisfied bool) float64 {
	c := expertise
	if highComplexity {
		c *= complexityPenalty
	}
	if !principlesSatisfied {
		c *= violationPenalty
	}
	return min(max(c, 0), 1)
}

// History returns a copy of the agent's traces in generation order.
func (a *Agent) History() []model.ReasoningTrace {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.ReasoningTrace, len(a.history))
	copy(out, a.history)
	return out
}

// HistoryLen returns the number of traces generated so far.
func (a *Agent) HistoryLen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.history)
}

// PerformanceMetrics returns the externally maintained metrics.
func (a *Agent) PerformanceMetrics() model.PerformanceMetrics {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.metrics
}

// SetPerformanceMetrics replaces the agent's metrics. The pipeline never
// calls this; evaluation harnesses do.
func (a *Agent) SetPerformanceMetrics(m model.PerformanceMetrics) {
	a.mu.Lock()
	a.metrics = m
	a.mu.Unlock()
}

// RosterEntry returns the agent's identity as seen by the analysis stages.
func (a *Agent) RosterEntry() model.RosterEntry {
	return model.RosterEntry{Name: a.Name, Expertise: a.Expertise}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
