package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemActor is the synthetic actor credited with team-level decisions.
const SystemActor = "System"

// CoordinationDecision is a Level-2 explanation: one inter-agent decision
// taken while executing a task. Created fresh per task.
type CoordinationDecision struct {
	DecisionType               DecisionType `json:"decision_type"`
	FromAgent                  string       `json:"from_agent"`
	ToAgent                    *string      `json:"to_agent"`
	Rationale                  string       `json:"rationale"`
	DelegationReason           *string      `json:"delegation_reason,omitempty"`
	ConflictResolutionStrategy *string      `json:"conflict_resolution_strategy,omitempty"`
	Timestamp                  time.Time    `json:"timestamp"`
}

// AgentViolations lists the principles one agent violated for a task.
type AgentViolations struct {
	Agent      string   `json:"agent"`
	Violations []string `json:"violations"`
}

// SafetyAssessment aggregates violations and coordination issues into a
// status and per-agent responsibility attribution.
type SafetyAssessment struct {
	Status                   SafetyStatus       `json:"status"`
	ConstitutionalViolations []AgentViolations  `json:"constitutional_violations"`
	CoordinationIssues       []string           `json:"coordination_issues"`
	EmergentRisks            []string           `json:"emergent_risks"` // Reserved; never populated.
	ResponsibleAgents        map[string]float64 `json:"responsible_agents"`
	InterventionRequired     bool               `json:"intervention_required"`
	InterventionReason       *string            `json:"intervention_reason"`
}

// TimelineEntry is one step of the collective timeline.
type TimelineEntry struct {
	Step       int     `json:"step"`
	Agent      string  `json:"agent"`
	Action     string  `json:"action"`
	Confidence float64 `json:"confidence"`
}

// CollectiveExplanation is the Level-3 explanation of the team outcome.
type CollectiveExplanation struct {
	Task               string             `json:"task"`
	AgentContributions map[string]float64 `json:"agent_contributions"`
	EmergentBehaviors  []string           `json:"emergent_behaviors"`
	TemporalTimeline   []TimelineEntry    `json:"temporal_timeline"`
	Counterfactuals    []string           `json:"counterfactuals"`
	// CollectiveConfidence is the unweighted mean of trace confidences.
	CollectiveConfidence float64   `json:"collective_confidence"`
	Recommendation       string    `json:"recommendation"`
	Timestamp            time.Time `json:"timestamp"`
}

// TaskResult is the immutable aggregate produced by one task execution.
type TaskResult struct {
	ID                 uuid.UUID              `json:"id"`
	Task               string                 `json:"task"`
	Success            bool                   `json:"success"`
	Level1Explanations []ReasoningTrace       `json:"level1_explanations"`
	Level2Explanations []CoordinationDecision `json:"level2_explanations"`
	Level3Explanation  CollectiveExplanation  `json:"level3_explanation"`
	SafetyAssessment   SafetyAssessment       `json:"safety_assessment"`
	AutomationLevel    AutomationLevel        `json:"automation_level"`
	// CalibratedConfidence is the expertise-weighted confidence used for
	// trust calibration. It intentionally differs from
	// Level3Explanation.CollectiveConfidence.
	CalibratedConfidence float64   `json:"calibrated_confidence"`
	RequiresHumanReview  bool      `json:"requires_human_review"`
	InterventionReason   *string   `json:"intervention_reason"`
	ExecutionTime        float64   `json:"execution_time"` // Seconds.
	Timestamp            time.Time `json:"timestamp"`
	ContentHash          string    `json:"content_hash,omitempty"`
}

// DecisionsOfType returns the decisions of type dt, preserving order.
func (r TaskResult) DecisionsOfType(dt DecisionType) []CoordinationDecision {
	var out []CoordinationDecision
	for _, d := range r.Level2Explanations {
		if d.DecisionType == dt {
			out = append(out, d)
		}
	}
	return out
}
