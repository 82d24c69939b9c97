package explain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/model"
)

func fixedExplainer() *Explainer {
	e := New(nil)
	e.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return e
}

func decisions(n int) []model.CoordinationDecision {
	return make([]model.CoordinationDecision, n)
}

func TestExplain(t *testing.T) {
	roster := []model.RosterEntry{{Name: "Alice", Expertise: 0.9}, {Name: "Bob", Expertise: 0.85}}
	traces := []model.ReasoningTrace{
		{Agent: "Alice", Action: model.TraceAction, Confidence: 0.9},
		{Agent: "Bob", Action: model.TraceAction, Confidence: 0.85},
	}

	got := fixedExplainer().Explain("Analyze", traces, nil, model.SafetyAssessment{Status: model.StatusSafe}, roster)

	assert.Equal(t, "Analyze", got.Task)
	assert.Equal(t, map[string]float64{"Alice": 0.5, "Bob": 0.5}, got.AgentContributions)
	assert.Empty(t, got.EmergentBehaviors)
	require.Len(t, got.TemporalTimeline, 2)
	assert.Equal(t, model.TimelineEntry{Step: 1, Agent: "Alice", Action: model.TraceAction, Confidence: 0.9}, got.TemporalTimeline[0])
	assert.Equal(t, 2, got.TemporalTimeline[1].Step)
	assert.Equal(t, []string{CounterfactualThreshold, CounterfactualExpertise}, got.Counterfactuals)
	assert.InDelta(t, 0.875, got.CollectiveConfidence, 1e-9)
	assert.Equal(t, RecommendSafe, got.Recommendation)
	assert.Equal(t, 2026, got.Timestamp.Year())
}

func TestExplainHighCoordination(t *testing.T) {
	e := fixedExplainer()
	two := e.Explain("t", nil, decisions(2), model.SafetyAssessment{}, nil)
	assert.Empty(t, two.EmergentBehaviors)

	three := e.Explain("t", nil, decisions(3), model.SafetyAssessment{}, nil)
	assert.Equal(t, []string{BehaviorHighCoordination}, three.EmergentBehaviors)
}

func TestExplainEmpty(t *testing.T) {
	got := fixedExplainer().Explain("t", nil, nil, model.SafetyAssessment{Status: model.StatusSafe}, nil)
	assert.Zero(t, got.CollectiveConfidence)
	assert.NotNil(t, got.TemporalTimeline)
	assert.Empty(t, got.TemporalTimeline)
	assert.Empty(t, got.AgentContributions)
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, RecommendSafe, Recommendation(model.StatusSafe))
	assert.Equal(t, RecommendWarning, Recommendation(model.StatusWarning))
	assert.Equal(t, RecommendCritical, Recommendation(model.StatusCritical))
}

func TestExplainUsesAllocator(t *testing.T) {
	calls := 0
	alloc := func(names []string) map[string]float64 {
		calls++
		return map[string]float64{"lead": 1}
	}
	got := New(alloc).Explain("t", nil, nil, model.SafetyAssessment{}, []model.RosterEntry{{Name: "x"}})
	assert.Equal(t, 1, calls)
	assert.Equal(t, map[string]float64{"lead": 1}, got.AgentContributions)
}
