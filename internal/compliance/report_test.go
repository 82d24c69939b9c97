package compliance

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/integrity"
	"github.com/ashita-ai/cohumain/internal/model"
)

var generated = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func result(status model.SafetyStatus, review bool) model.TaskResult {
	r := model.TaskResult{
		Task:                "t",
		SafetyAssessment:    model.SafetyAssessment{Status: status},
		RequiresHumanReview: review,
		Timestamp:           generated,
	}
	r.ContentHash = integrity.ComputeResultHash(r)
	return r
}

func TestBuild(t *testing.T) {
	history := []model.TaskResult{
		result(model.StatusSafe, false),
		result(model.StatusCritical, true),
		result(model.StatusWarning, true),
	}
	r := Build(Input{
		Standard:            "EU_AI_ACT",
		RegulatoryFramework: "SEC",
		Domain:              "finance",
		Agents:              []AgentSummary{{Name: "Alice", Role: "Analyst", Expertise: 0.9}},
		History:             history,
		Now:                 generated,
	})

	assert.Equal(t, FrameworkName, r.Framework)
	assert.Equal(t, "EU_AI_ACT", r.Standard)
	require.NotNil(t, r.RegulatoryFramework)
	assert.Equal(t, "SEC", *r.RegulatoryFramework)
	assert.Equal(t, "finance", r.Domain)
	assert.Equal(t, 3, r.TotalTasks)
	assert.Equal(t, 1, r.SafetyIncidents)
	assert.Equal(t, 2, r.InterventionsRequired)
	assert.Equal(t, integrity.AuditRoot(history), r.AuditRoot)
}

func TestBuildDefaults(t *testing.T) {
	r := Build(Input{})
	assert.Equal(t, DefaultStandard, r.Standard)
	assert.Nil(t, r.RegulatoryFramework)
	assert.NotNil(t, r.Agents)
	assert.Zero(t, r.TotalTasks)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Empty(t, r.AuditRoot)
}

func TestRenderJSONRoundTrip(t *testing.T) {
	in := Build(Input{
		Standard: "general",
		Domain:   "healthcare",
		Agents:   []AgentSummary{{Name: "Alice", Role: "Doctor", Expertise: 0.9, TasksCompleted: 2}},
		History:  []model.TaskResult{result(model.StatusSafe, false)},
		Now:      generated,
	})

	out, err := Render(in, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"framework\": \"CoHumAIn\"")

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	for _, key := range []string{"framework", "standard", "regulatory_framework", "domain", "agents", "total_tasks", "safety_incidents", "interventions_required", "generated_at"} {
		assert.Contains(t, raw, key)
	}

	var back Report
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, in, back)
}

func TestRenderUnsetRegulatoryFrameworkAsNull(t *testing.T) {
	r := Build(Input{Domain: "general", Now: generated})

	out, err := Render(r, FormatJSON)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	require.Contains(t, raw, "regulatory_framework")
	assert.Nil(t, raw["regulatory_framework"])

	text, err := Render(r, FormatText)
	require.NoError(t, err)
	assert.Contains(t, text, "regulatory_framework: null\n")

	named := Build(Input{RegulatoryFramework: "none", Now: generated})
	out, err = Render(named, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"regulatory_framework": "none"`)
}

func TestRenderTextFallback(t *testing.T) {
	r := Build(Input{Domain: "finance", Now: generated})
	for _, format := range []string{FormatText, "yaml", ""} {
		out, err := Render(r, format)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "framework: CoHumAIn\n"), format)
		assert.Contains(t, out, "domain: finance\n")
		assert.Contains(t, out, "total_tasks: 0\n")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummaryTable(&buf, []AgentPerformance{
		{Agent: "Alice", Role: "Analyst", Expertise: 0.9, Tasks: 3, AvgConfidence: 0.8, Accuracy: 0.95},
		{Agent: "Bob", Role: "Risk Manager", Expertise: 0.85},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "AGENT"))
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "0.95")
	assert.Contains(t, lines[2], "Risk Manager")
	// Columns align.
	assert.Equal(t, strings.Index(lines[0], "ROLE"), strings.Index(lines[1], "Analyst"))
}
