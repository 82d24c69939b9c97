package principles

import (
	"context"
	"strings"

	"github.com/ashita-ai/cohumain/internal/model"
)

// Keywords returns a rule-based policy. rules maps a principle to the terms
// that violate it; a principle is violated when the task text contains any
// of its terms, ignoring case. Principles without rules are satisfied.
func Keywords(rules map[string][]string) Policy {
	normalized := make(map[string][]string, len(rules))
	for principle, terms := range rules {
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term != "" {
				normalized[principle] = append(normalized[principle], term)
			}
		}
	}
	return func(_ context.Context, principle, task string, _ model.TaskContext) (bool, error) {
		terms := normalized[principle]
		if len(terms) == 0 {
			return true, nil
		}
		lower := strings.ToLower(task)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return false, nil
			}
		}
		return true, nil
	}
}
