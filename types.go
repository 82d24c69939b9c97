package cohumain

import (
	"github.com/ashita-ai/cohumain/internal/agent"
	"github.com/ashita-ai/cohumain/internal/attribution"
	"github.com/ashita-ai/cohumain/internal/compliance"
	"github.com/ashita-ai/cohumain/internal/model"
)

// Public names for the domain types. The import graph runs one way: cohumain
// (root) imports internal/*, never the reverse.
type (
	Agent            = agent.Agent
	AgentSpec        = agent.Spec
	AgentOption      = agent.Option
	Allocator        = attribution.Allocator
	AgentPerformance = compliance.AgentPerformance
	ComplianceReport = compliance.Report

	TaskContext            = model.TaskContext
	TaskResult             = model.TaskResult
	ReasoningTrace         = model.ReasoningTrace
	PrincipleCheck         = model.PrincipleCheck
	CoordinationDecision   = model.CoordinationDecision
	SafetyAssessment       = model.SafetyAssessment
	CollectiveExplanation  = model.CollectiveExplanation
	PerformanceMetrics     = model.PerformanceMetrics
	InterventionThresholds = model.InterventionThresholds

	SafetyMode       = model.SafetyMode
	SafetyStatus     = model.SafetyStatus
	AutomationLevel  = model.AutomationLevel
	DecisionType     = model.DecisionType
	ExplanationLevel = model.ExplanationLevel
	Stakes           = model.Stakes
)

const (
	SafetyPermissive = model.SafetyPermissive
	SafetyBalanced   = model.SafetyBalanced
	SafetyStrict     = model.SafetyStrict
	SafetyMaximum    = model.SafetyMaximum

	StatusSafe     = model.StatusSafe
	StatusWarning  = model.StatusWarning
	StatusCritical = model.StatusCritical

	InTheLoop    = model.InTheLoop
	OnTheLoop    = model.OnTheLoop
	OutOfTheLoop = model.OutOfTheLoop

	DecisionDelegation         = model.DecisionDelegation
	DecisionConflictResolution = model.DecisionConflictResolution
	DecisionInformationSharing = model.DecisionInformationSharing

	LevelIndividual   = model.LevelIndividual
	LevelCoordination = model.LevelCoordination
	LevelCollective   = model.LevelCollective

	StakesLow    = model.StakesLow
	StakesMedium = model.StakesMedium
	StakesHigh   = model.StakesHigh
)

// ErrInvalidAgentSpec is wrapped by every error NewAgent returns for a bad spec.
var ErrInvalidAgentSpec = agent.ErrInvalidSpec

// NewAgent validates spec and creates an agent with empty history. Zero
// MaxRetries and Timeout take their defaults (3 and 60s).
func NewAgent(spec AgentSpec, opts ...AgentOption) (*Agent, error) {
	return agent.New(spec, opts...)
}

// WithAgentPolicy gives one agent its own principle policy, overriding the
// framework-wide one.
func WithAgentPolicy(p PrinciplePolicy) AgentOption {
	return agent.WithChecker(toChecker(p, resolvedOptions{}))
}

// UniformAllocator gives every registered agent an equal share.
func UniformAllocator(names []string) map[string]float64 {
	return attribution.Uniform(names)
}
