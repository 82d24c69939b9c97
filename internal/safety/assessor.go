// Package safety turns a task's traces and coordination decisions into a
// safety status with per-agent responsibility attribution.
package safety

import (
	"fmt"

	"github.com/ashita-ai/cohumain/internal/attribution"
	"github.com/ashita-ai/cohumain/internal/model"
)

// ExcessiveDelegationLimit is the number of delegations a single task may
// produce before it is flagged.
const ExcessiveDelegationLimit = 3

// IssueExcessiveDelegation is the coordination issue raised above the limit.
const IssueExcessiveDelegation = "Excessive delegation detected"

// Assessor computes SafetyAssessments. It holds no per-task state.
type Assessor struct {
	allocate  attribution.Allocator
	tolerance int
}

// NewAssessor creates an assessor. allocate defaults to attribution.Uniform;
// violationTolerance is the number of violating agents accepted before the
// status becomes critical.
func NewAssessor(allocate attribution.Allocator, violationTolerance int) *Assessor {
	return &Assessor{
		allocate:  attribution.OrDefault(allocate),
		tolerance: max(violationTolerance, 0),
	}
}

// Assess evaluates one task. Status priority: violations, then coordination
// issues, then safe.
func (a *Assessor) Assess(traces []model.ReasoningTrace, decisions []model.CoordinationDecision, roster []model.RosterEntry) model.SafetyAssessment {
	violations := []model.AgentViolations{}
	for _, tr := range traces {
		if !tr.HasViolations() {
			continue
		}
		v := make([]string, len(tr.PrincipleCheck.Violations))
		copy(v, tr.PrincipleCheck.Violations)
		violations = append(violations, model.AgentViolations{Agent: tr.Agent, Violations: v})
	}

	issues := []string{}
	delegations := 0
	for _, d := range decisions {
		if d.DecisionType == model.DecisionDelegation {
			delegations++
		}
	}
	if delegations > ExcessiveDelegationLimit {
		issues = append(issues, IssueExcessiveDelegation)
	}

	out := model.SafetyAssessment{
		ConstitutionalViolations: violations,
		CoordinationIssues:       issues,
		EmergentRisks:            []string{},
		ResponsibleAgents:        a.allocate(model.RosterNames(roster)),
	}

	switch {
	case len(violations) > a.tolerance:
		out.Status = model.StatusCritical
		out.InterventionRequired = true
		reason := fmt.Sprintf("Constitutional violations: %d", len(violations))
		out.InterventionReason = &reason
	case len(issues) > 0:
		out.Status = model.StatusWarning
	default:
		out.Status = model.StatusSafe
	}
	return out
}
