package cohumain

import (
	"context"

	"github.com/ashita-ai/cohumain/internal/principles"
)

// PrinciplePolicy decides whether a task satisfies one constitutional
// principle. A returned error is retried up to the agent's MaxRetries; a
// principle that never evaluates cleanly counts as violated.
type PrinciplePolicy interface {
	Satisfied(ctx context.Context, principle, task string, tc TaskContext) (bool, error)
}

// PrinciplePolicyFunc adapts a function to PrinciplePolicy.
type PrinciplePolicyFunc func(ctx context.Context, principle, task string, tc TaskContext) (bool, error)

// Satisfied calls f.
func (f PrinciplePolicyFunc) Satisfied(ctx context.Context, principle, task string, tc TaskContext) (bool, error) {
	return f(ctx, principle, task, tc)
}

// KeywordPolicy returns a policy that flags a principle as violated when the
// task text contains one of its terms, ignoring case.
func KeywordPolicy(rules map[string][]string) PrinciplePolicy {
	return PrinciplePolicyFunc(principles.Keywords(rules))
}

// TaskHook receives a notification after each task is recorded in history.
// Hooks run synchronously on the caller's goroutine, outside the Framework
// lock. Failures are logged but do not fail the task.
type TaskHook interface {
	OnTaskExecuted(ctx context.Context, result TaskResult) error
}

func toChecker(p PrinciplePolicy, o resolvedOptions) *principles.Checker {
	if p == nil {
		return principles.NewChecker(nil, o.logger)
	}
	return principles.NewChecker(p.Satisfied, o.logger)
}
