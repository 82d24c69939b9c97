package coordination

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/model"
)

func testAnalyzer(threshold float64) *Analyzer {
	return NewAnalyzer(threshold, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func traces(pairs ...any) []model.ReasoningTrace {
	var out []model.ReasoningTrace
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.ReasoningTrace{
			Agent:      pairs[i].(string),
			Confidence: pairs[i+1].(float64),
			Action:     model.TraceAction,
		})
	}
	return out
}

func TestAnalyzeDelegatesToHighestExpertise(t *testing.T) {
	roster := []model.RosterEntry{{Name: "Low", Expertise: 0.60}, {Name: "High", Expertise: 0.99}}
	got := testAnalyzer(0.95).Analyze("task", traces("Low", 0.60, "High", 0.99), roster)

	delegations := filter(got, model.DecisionDelegation)
	require.Len(t, delegations, 1)
	d := delegations[0]
	assert.Equal(t, "Low", d.FromAgent)
	require.NotNil(t, d.ToAgent)
	assert.Equal(t, "High", *d.ToAgent)
	assert.Contains(t, d.Rationale, "0.60")
	assert.Contains(t, d.Rationale, "0.95")
	require.NotNil(t, d.DelegationReason)
	assert.Contains(t, *d.DelegationReason, "0.99")
	assert.False(t, d.Timestamp.IsZero())
}

func TestAnalyzeDelegatesFromEveryLowAgentInOrder(t *testing.T) {
	roster := []model.RosterEntry{{Name: "A", Expertise: 0.5}, {Name: "B", Expertise: 0.6}, {Name: "C", Expertise: 0.7}}
	got := testAnalyzer(0.95).Analyze("task", traces("A", 0.5, "B", 0.6, "C", 0.7), roster)

	delegations := filter(got, model.DecisionDelegation)
	require.Len(t, delegations, 3)
	assert.Equal(t, "A", delegations[0].FromAgent)
	assert.Equal(t, "C", *delegations[0].ToAgent)
	assert.Equal(t, "B", delegations[1].FromAgent)
	assert.Equal(t, "C", *delegations[1].ToAgent)
	// The best delegate for C itself is the next-highest agent.
	assert.Equal(t, "C", delegations[2].FromAgent)
	assert.Equal(t, "B", *delegations[2].ToAgent)
}

func TestAnalyzeThresholdIsStrict(t *testing.T) {
	roster := []model.RosterEntry{{Name: "A", Expertise: 0.80}, {Name: "B", Expertise: 0.80}}
	got := testAnalyzer(0.80).Analyze("task", traces("A", 0.80, "B", 0.80), roster)
	assert.Empty(t, got)
}

func TestAnalyzeSingleAgentNeverCoordinates(t *testing.T) {
	roster := []model.RosterEntry{{Name: "Solo", Expertise: 0.10}}
	got := testAnalyzer(0.95).Analyze("task", traces("Solo", 0.10), roster)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestAnalyzeConflictResolution(t *testing.T) {
	tests := []struct {
		name      string
		traces    []model.ReasoningTrace
		conflicts int
	}{
		{"spread above limit", traces("Sure", 0.99, "Unsure", 0.50), 1},
		{"spread exactly at limit", traces("A", 0.5, "B", 0.3), 0},
		{"small spread", traces("A", 0.90, "B", 0.85), 0},
		{"three agents one outlier", traces("A", 0.9, "B", 0.9, "C", 0.2), 1},
		{"no traces", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Threshold 0 keeps delegation out of the picture.
			got := testAnalyzer(0).Analyze("task", tt.traces, nil)
			c := filter(got, model.DecisionConflictResolution)
			require.Len(t, c, tt.conflicts)
			if tt.conflicts == 1 {
				assert.Equal(t, model.SystemActor, c[0].FromAgent)
				assert.Nil(t, c[0].ToAgent)
				require.NotNil(t, c[0].ConflictResolutionStrategy)
				assert.Equal(t, ConflictStrategy, *c[0].ConflictResolutionStrategy)
			}
		})
	}
}

func TestAnalyzeConflictComesAfterDelegations(t *testing.T) {
	roster := []model.RosterEntry{{Name: "Sure", Expertise: 0.99}, {Name: "Unsure", Expertise: 0.50}}
	got := testAnalyzer(0.80).Analyze("task", traces("Sure", 0.99, "Unsure", 0.50), roster)
	require.Len(t, got, 2)
	assert.Equal(t, model.DecisionDelegation, got[0].DecisionType)
	assert.Equal(t, model.DecisionConflictResolution, got[1].DecisionType)
}

func TestBestDelegate(t *testing.T) {
	roster := []model.RosterEntry{{Name: "A", Expertise: 0.7}, {Name: "B", Expertise: 0.9}, {Name: "C", Expertise: 0.9}}

	d, ok := BestDelegate(roster, "A")
	require.True(t, ok)
	assert.Equal(t, "B", d.Name, "ties go to the earliest registered agent")

	d, ok = BestDelegate(roster, "B")
	require.True(t, ok)
	assert.Equal(t, "C", d.Name)

	_, ok = BestDelegate([]model.RosterEntry{{Name: "A", Expertise: 0.7}}, "A")
	assert.False(t, ok)
}

func filter(ds []model.CoordinationDecision, dt model.DecisionType) []model.CoordinationDecision {
	var out []model.CoordinationDecision
	for _, d := range ds {
		if d.DecisionType == dt {
			out = append(out, d)
		}
	}
	return out
}
