package model

import (
	"time"

	"github.com/google/uuid"
)

// Fixed narrative of a Level-1 trace.
const (
	TraceThoughtPrefix = "Analyzing task: "
	TraceAction        = "Execute primary capability"
	TraceObservation   = "Task completed"
)

// PrincipleCheck is the result of evaluating an agent's constitutional
// principles against one task.
type PrincipleCheck struct {
	AllSatisfied      bool     `json:"all_satisfied"`
	Violations        []string `json:"violations"`
	PrinciplesChecked []string `json:"principles_checked"`
	// Errors lists principles whose evaluation failed; such principles are
	// also reported as violations.
	Errors []string `json:"errors,omitempty"`
}

// ReasoningTrace is a Level-1 (individual) explanation produced by one agent
// for one task. Owned by the producing agent's history and returned by value.
type ReasoningTrace struct {
	ID             uuid.UUID      `json:"id"`
	Agent          string         `json:"agent"`
	Task           string         `json:"task"`
	Thought        string         `json:"thought"`
	Action         string         `json:"action"`
	Observation    string         `json:"observation"`
	Confidence     float64        `json:"confidence"`
	PrincipleCheck PrincipleCheck `json:"constitutional_check"`
	Timestamp      time.Time      `json:"timestamp"`
}

// HasViolations reports whether the trace's principle check found violations.
func (t ReasoningTrace) HasViolations() bool {
	return !t.PrincipleCheck.AllSatisfied
}

// RosterEntry is the slice of agent identity the analysis stages need.
// Entries are kept in registry order.
type RosterEntry struct {
	Name      string
	Expertise float64
}

// RosterNames returns the names of the roster in order.
func RosterNames(roster []RosterEntry) []string {
	names := make([]string, len(roster))
	for i, r := range roster {
		names[i] = r.Name
	}
	return names
}

// PerformanceMetrics are externally maintained quality figures for an agent.
// The pipeline never recomputes them.
type PerformanceMetrics struct {
	Accuracy       float64 `json:"accuracy"`
	AvgConfidence  float64 `json:"avg_confidence"`
	TasksCompleted int     `json:"tasks_completed"`
}
