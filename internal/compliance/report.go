// Package compliance builds the regulatory compliance summary over a task
// history and the agent performance summary.
package compliance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ashita-ai/cohumain/internal/integrity"
	"github.com/ashita-ai/cohumain/internal/model"
)

// FrameworkName is the fixed framework identifier carried by every report.
const FrameworkName = "CoHumAIn"

// Report formats. Any other format renders as text.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// DefaultStandard is the standard used when the caller names none.
const DefaultStandard = "general"

// AgentSummary is one agent's entry in a compliance report.
type AgentSummary struct {
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Expertise      float64 `json:"expertise"`
	TasksCompleted int     `json:"tasks_completed"`
}

// Report is the fixed-shape compliance summary.
type Report struct {
	Framework             string         `json:"framework"`
	Standard              string         `json:"standard"`
	RegulatoryFramework   *string        `json:"regulatory_framework"`
	Domain                string         `json:"domain"`
	Agents                []AgentSummary `json:"agents"`
	TotalTasks            int            `json:"total_tasks"`
	SafetyIncidents       int            `json:"safety_incidents"`
	InterventionsRequired int            `json:"interventions_required"`
	GeneratedAt           time.Time      `json:"generated_at"`
	AuditRoot             string         `json:"audit_root,omitempty"`
}

// Input is everything a report is built from.
type Input struct {
	Standard string
	// RegulatoryFramework is reported as null when empty.
	RegulatoryFramework string
	Domain              string
	Agents              []AgentSummary
	History             []model.TaskResult
	Now                 time.Time
}

// Build summarizes the history. Safety incidents count CRITICAL results;
// interventions count results that required human review.
func Build(in Input) Report {
	agents := in.Agents
	if agents == nil {
		agents = []AgentSummary{}
	}
	standard := in.Standard
	if standard == "" {
		standard = DefaultStandard
	}
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	r := Report{
		Framework:   FrameworkName,
		Standard:    standard,
		Domain:      in.Domain,
		Agents:      agents,
		TotalTasks:  len(in.History),
		GeneratedAt: now,
		AuditRoot:   integrity.AuditRoot(in.History),
	}
	if in.RegulatoryFramework != "" {
		rf := in.RegulatoryFramework
		r.RegulatoryFramework = &rf
	}
	for _, t := range in.History {
		if t.SafetyAssessment.Status == model.StatusCritical {
			r.SafetyIncidents++
		}
		if t.RequiresHumanReview {
			r.InterventionsRequired++
		}
	}
	return r
}

// Render serializes the report. "json" yields indented JSON; every other
// format yields the text dump.
func Render(r Report, format string) (string, error) {
	if strings.EqualFold(format, FormatJSON) {
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("compliance: marshal report: %w", err)
		}
		return string(b), nil
	}
	return renderText(r), nil
}

func renderText(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "framework: %s\n", r.Framework)
	fmt.Fprintf(&b, "standard: %s\n", r.Standard)
	if r.RegulatoryFramework != nil {
		fmt.Fprintf(&b, "regulatory_framework: %s\n", *r.RegulatoryFramework)
	} else {
		fmt.Fprintf(&b, "regulatory_framework: null\n")
	}
	fmt.Fprintf(&b, "domain: %s\n", r.Domain)
	fmt.Fprintf(&b, "agents:\n")
	for _, a := range r.Agents {
		fmt.Fprintf(&b, "  - name: %s, role: %s, expertise: %.2f, tasks_completed: %d\n",
			a.Name, a.Role, a.Expertise, a.TasksCompleted)
	}
	fmt.Fprintf(&b, "total_tasks: %d\n", r.TotalTasks)
	fmt.Fprintf(&b, "safety_incidents: %d\n", r.SafetyIncidents)
	fmt.Fprintf(&b, "interventions_required: %d\n", r.InterventionsRequired)
	fmt.Fprintf(&b, "generated_at: %s\n", r.GeneratedAt.Format(time.RFC3339))
	if r.AuditRoot != "" {
		fmt.Fprintf(&b, "audit_root: %s\n", r.AuditRoot)
	}
	return b.String()
}
