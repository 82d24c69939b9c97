package team

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/model"
)

const financeYAML = `
framework:
  domain: finance
  safety_mode: strict
  regulatory_framework: SEC
  parallel_traces: true
principles:
  "Never guarantee returns":
    - guaranteed return
agents:
  - name: Alice
    role: Financial Analyst
    expertise: 0.9
    confidence_threshold: 0.8
    capabilities: [portfolio_analysis]
    constitutional_principles:
      - Never guarantee returns
    timeout: 5s
  - name: Bob
    role: Risk Manager
    expertise: 0.85
    max_retries: 1
tasks:
  - task: Rebalance the retirement portfolio
    context:
      complexity: high
      stakes: high
  - task: Summarize quarterly exposure
    human_in_loop: true
`

func TestParse(t *testing.T) {
	tm, err := Parse([]byte(financeYAML))
	require.NoError(t, err)

	assert.Equal(t, "finance", tm.Framework.Domain)
	assert.Equal(t, model.SafetyStrict, tm.Framework.SafetyMode)
	require.NotNil(t, tm.Framework.ParallelTraces)
	assert.True(t, *tm.Framework.ParallelTraces)
	assert.Equal(t, []string{"guaranteed return"}, tm.Principles["Never guarantee returns"])

	require.Len(t, tm.Agents, 2)
	assert.Equal(t, 5*time.Second, tm.Agents[0].Timeout)
	assert.Equal(t, []string{"portfolio_analysis"}, tm.Agents[0].Capabilities)
	assert.Equal(t, 1, tm.Agents[1].MaxRetries)

	require.Len(t, tm.Tasks, 2)
	tc := tm.Tasks[0].TaskContext()
	assert.True(t, tc.HighComplexity())
	assert.Equal(t, model.StakesHigh, tc.Stakes())
	assert.True(t, tm.Tasks[1].HumanInLoop)
	assert.Equal(t, model.StakesMedium, tm.Tasks[1].TaskContext().Stakes())
}

func TestBuildAgentsAppliesDefaults(t *testing.T) {
	tm, err := Parse([]byte(financeYAML))
	require.NoError(t, err)

	agents, err := tm.BuildAgents(Defaults{MaxRetries: 2, Timeout: 10 * time.Second})
	require.NoError(t, err)
	require.Len(t, agents, 2)

	assert.Equal(t, "Alice", agents[0].Name)
	assert.Equal(t, 5*time.Second, agents[0].Timeout)
	assert.Equal(t, 2, agents[0].MaxRetries)
	assert.Equal(t, 10*time.Second, agents[1].Timeout)
	assert.Equal(t, 1, agents[1].MaxRetries)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no agents", "framework: {domain: x}\n", "no agents defined"},
		{"unknown safety mode", "framework: {safety_mode: reckless}\nagents: [{name: A, expertise: 0.5}]\n", "unknown mode 'reckless'"},
		{"duplicate names", "agents: [{name: A, expertise: 0.5}, {name: A, expertise: 0.6}]\n", "duplicate agent name 'A'"},
		{"expertise out of range", "agents: [{name: A, expertise: 1.5}]\n", "expertise"},
		{"reserved name", "agents: [{name: System, expertise: 0.5}]\n", "reserved"},
		{"orphan rule", "principles: {ghost: [x]}\nagents: [{name: A, expertise: 0.5}]\n", "matches no agent principle"},
		{"empty task", "agents: [{name: A, expertise: 0.5}]\ntasks: [{task: ''}]\n", "tasks[0]"},
		{"bad yaml", "agents: [\n", "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(financeYAML), 0o600))

	tm, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tm.Agents, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read team file")
}
