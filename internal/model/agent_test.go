package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/model"
)

func TestSafetyModeConfidenceThreshold(t *testing.T) {
	tests := []struct {
		mode model.SafetyMode
		want float64
	}{
		{model.SafetyPermissive, 0.70},
		{model.SafetyBalanced, 0.80},
		{model.SafetyStrict, 0.90},
		{model.SafetyMaximum, 0.95},
		{model.SafetyMode("unknown"), 0.80},
		{model.SafetyMode(""), 0.80},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.mode.ConfidenceThreshold(), 1e-9)
		})
	}
}

func TestSafetyModeKnown(t *testing.T) {
	assert.True(t, model.SafetyStrict.Known())
	assert.False(t, model.SafetyMode("paranoid").Known())
}

func TestThresholdsFor(t *testing.T) {
	th := model.ThresholdsFor(model.SafetyStrict)
	assert.InDelta(t, 0.90, th.ConfidenceMin, 1e-9)
	assert.InDelta(t, 0.3, th.RiskMax, 1e-9)
	assert.Equal(t, 0, th.ViolationTolerance)
}

func TestExplanationLevelValues(t *testing.T) {
	assert.Equal(t, 1, int(model.LevelIndividual))
	assert.Equal(t, 2, int(model.LevelCoordination))
	assert.Equal(t, 3, int(model.LevelCollective))
	assert.Equal(t, "coordination", model.LevelCoordination.String())
	assert.Equal(t, "unknown", model.ExplanationLevel(9).String())
}

func TestTaskContext(t *testing.T) {
	t.Run("nil context", func(t *testing.T) {
		var c model.TaskContext
		assert.False(t, c.HighComplexity())
		assert.Equal(t, model.StakesMedium, c.Stakes())
	})
	t.Run("high complexity", func(t *testing.T) {
		c := model.TaskContext{"complexity": "high"}
		assert.True(t, c.HighComplexity())
	})
	t.Run("non-string complexity ignored", func(t *testing.T) {
		c := model.TaskContext{"complexity": 7}
		assert.False(t, c.HighComplexity())
	})
	t.Run("explicit stakes", func(t *testing.T) {
		c := model.TaskContext{"stakes": "low"}
		assert.Equal(t, model.StakesLow, c.Stakes())
	})
	t.Run("present non-string stakes match nothing", func(t *testing.T) {
		c := model.TaskContext{"stakes": 3}
		assert.Equal(t, model.Stakes(""), c.Stakes())
	})
}

func TestValidateAgentName(t *testing.T) {
	require.NoError(t, model.ValidateAgentName("Alice"))
	assert.Error(t, model.ValidateAgentName(""))
	assert.Error(t, model.ValidateAgentName(strings.Repeat("a", 256)))
	assert.Error(t, model.ValidateAgentName(model.SystemActor))
}

func TestValidateUnitInterval(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		require.NoError(t, model.ValidateUnitInterval("expertise", v), "expected valid: %v", v)
	}
	for _, v := range []float64{-0.01, 1.01} {
		assert.Error(t, model.ValidateUnitInterval("expertise", v), "expected invalid: %v", v)
	}
}

func TestDecisionsOfType(t *testing.T) {
	r := model.TaskResult{Level2Explanations: []model.CoordinationDecision{
		{DecisionType: model.DecisionDelegation, FromAgent: "a"},
		{DecisionType: model.DecisionConflictResolution, FromAgent: model.SystemActor},
		{DecisionType: model.DecisionDelegation, FromAgent: "b"},
	}}
	got := r.DecisionsOfType(model.DecisionDelegation)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].FromAgent)
	assert.Equal(t, "b", got[1].FromAgent)
	assert.Empty(t, r.DecisionsOfType(model.DecisionInformationSharing))
}
