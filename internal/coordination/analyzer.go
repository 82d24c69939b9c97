// Package coordination produces Level-2 explanations: the delegation and
// conflict-resolution decisions a team makes while executing a task.
package coordination

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ashita-ai/cohumain/internal/model"
)

// ConflictSpread is the confidence spread above which agents are considered
// to disagree.
const ConflictSpread = 0.2

// ConflictStrategy is the resolution strategy attached to conflict decisions.
const ConflictStrategy = "Weighted voting by expertise"

// Analyzer inspects a batch of traces and emits coordination decisions.
type Analyzer struct {
	threshold float64
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalyzer creates an analyzer that proposes delegation for any trace
// whose confidence is strictly below threshold.
func NewAnalyzer(threshold float64, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		threshold: threshold,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Threshold returns the delegation threshold.
func (a *Analyzer) Threshold() float64 { return a.threshold }

// Analyze returns, in order, one delegation per low-confidence trace that has
// a delegate, followed by at most one conflict resolution.
func (a *Analyzer) Analyze(task string, traces []model.ReasoningTrace, roster []model.RosterEntry) []model.CoordinationDecision {
	decisions := []model.CoordinationDecision{}

	for _, tr := range traces {
		if tr.Confidence >= a.threshold {
			continue
		}
		delegate, ok := BestDelegate(roster, tr.Agent)
		if !ok {
			a.logger.Debug("coordination: no delegate available", "agent", tr.Agent, "task", task)
			continue
		}
		decisions = append(decisions, model.CoordinationDecision{
			DecisionType: model.DecisionDelegation,
			FromAgent:    tr.Agent,
			ToAgent:      ptr(delegate.Name),
			Rationale: fmt.Sprintf("Agent %s confidence (%.2f) below threshold (%.2f)",
				tr.Agent, tr.Confidence, a.threshold),
			DelegationReason: ptr(fmt.Sprintf("Agent %s has higher expertise (%.2f)",
				delegate.Name, delegate.Expertise)),
			Timestamp: a.now(),
		})
	}

	if lo, hi, ok := confidenceRange(traces); ok && len(traces) > 1 && hi-lo > ConflictSpread {
		decisions = append(decisions, model.CoordinationDecision{
			DecisionType:               model.DecisionConflictResolution,
			FromAgent:                  model.SystemActor,
			Rationale:                  "Significant confidence variance detected among agents",
			ConflictResolutionStrategy: ptr(ConflictStrategy),
			Timestamp:                  a.now(),
		})
	}
	return decisions
}

// BestDelegate returns the highest-expertise roster entry not named exclude.
// Ties go to the earliest registered entry.
func BestDelegate(roster []model.RosterEntry, exclude string) (model.RosterEntry, bool) {
	var best model.RosterEntry
	found := false
	for _, r := range roster {
		if r.Name == exclude {
			continue
		}
		if !found || r.Expertise > best.Expertise {
			best = r
			found = true
		}
	}
	return best, found
}

func confidenceRange(traces []model.ReasoningTrace) (lo, hi float64, ok bool) {
	if len(traces) == 0 {
		return 0, 0, false
	}
	lo, hi = traces[0].Confidence, traces[0].Confidence
	for _, tr := range traces[1:] {
		lo = min(lo, tr.Confidence)
		hi = max(hi, tr.Confidence)
	}
	return lo, hi, true
}

func ptr[T any](v T) *T { return &v }
