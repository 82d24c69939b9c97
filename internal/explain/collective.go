// Package explain builds the Level-3 collective explanation of a task.
package explain

import (
	"time"

	"github.com/ashita-ai/cohumain/internal/attribution"
	"github.com/ashita-ai/cohumain/internal/model"
)

// HighCoordinationAbove is the decision count above which the team's
// behavior is reported as coordination-heavy.
const HighCoordinationAbove = 2

// Fixed explanation text.
const (
	BehaviorHighCoordination = "High coordination required"

	CounterfactualThreshold = "If delegation threshold was lower, fewer transfers would occur"
	CounterfactualExpertise = "If all agents had higher expertise, confidence would increase"

	RecommendSafe     = "Task completed successfully with appropriate agent collaboration"
	RecommendWarning  = "Task completed with coordination issues - review recommended"
	RecommendCritical = "Critical safety concerns - human intervention required"
)

// Explainer produces CollectiveExplanations.
type Explainer struct {
	allocate attribution.Allocator
	now      func() time.Time
}

// New creates an explainer crediting contributions with allocate
// (attribution.Uniform when nil).
func New(allocate attribution.Allocator) *Explainer {
	return &Explainer{allocate: attribution.OrDefault(allocate), now: time.Now}
}

// Explain summarizes one task execution.
func (e *Explainer) Explain(
	task string,
	traces []model.ReasoningTrace,
	decisions []model.CoordinationDecision,
	assessment model.SafetyAssessment,
	roster []model.RosterEntry,
) model.CollectiveExplanation {
	behaviors := []string{}
	if len(decisions) > HighCoordinationAbove {
		behaviors = append(behaviors, BehaviorHighCoordination)
	}

	timeline := make([]model.TimelineEntry, len(traces))
	for i, tr := range traces {
		timeline[i] = model.TimelineEntry{
			Step:       i + 1,
			Agent:      tr.Agent,
			Action:     tr.Action,
			Confidence: tr.Confidence,
		}
	}

	return model.CollectiveExplanation{
		Task:                 task,
		AgentContributions:   e.allocate(model.RosterNames(roster)),
		EmergentBehaviors:    behaviors,
		TemporalTimeline:     timeline,
		Counterfactuals:      []string{CounterfactualThreshold, CounterfactualExpertise},
		CollectiveConfidence: MeanConfidence(traces),
		Recommendation:       Recommendation(assessment.Status),
		Timestamp:            e.now(),
	}
}

// MeanConfidence is the unweighted mean of trace confidences, 0 when empty.
func MeanConfidence(traces []model.ReasoningTrace) float64 {
	if len(traces) == 0 {
		return 0
	}
	var sum float64
	for _, tr := range traces {
		sum += tr.Confidence
	}
	return sum / float64(len(traces))
}

// Recommendation returns the operator guidance for a safety status.
func Recommendation(status model.SafetyStatus) string {
	switch status {
	case model.StatusCritical:
		return RecommendCritical
	case model.StatusWarning:
		return RecommendWarning
	default:
		return RecommendSafe
	}
}
