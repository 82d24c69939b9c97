// Package principles evaluates an agent's constitutional principles against
// a task. Evaluation is delegated to a pluggable Policy; the default policy
// reports every principle as satisfied.
package principles

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/ashita-ai/cohumain/internal/model"
)

// Policy decides whether a single principle is satisfied for a task.
// Implementations may call out to rule engines or classifiers; returned
// errors are treated as transient and retried by the Checker.
type Policy func(ctx context.Context, principle, task string, tc model.TaskContext) (bool, error)

// Satisfied is the default policy. It performs no evaluation.
func Satisfied(context.Context, string, string, model.TaskContext) (bool, error) {
	return true, nil
}

// defaultBaseDelay is the first backoff between policy attempts.
const defaultBaseDelay = 10 * time.Millisecond

// Checker runs a Policy over a list of principles.
type Checker struct {
	policy    Policy
	logger    *slog.Logger
	baseDelay time.Duration
}

// NewChecker creates a checker. A nil policy means Satisfied; a nil logger
// means slog.Default().
func NewChecker(policy Policy, logger *slog.Logger) *Checker {
	if policy == nil {
		policy = Satisfied
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{policy: policy, logger: logger, baseDelay: defaultBaseDelay}
}

// Check evaluates principles in declaration order. Each principle gets up to
// attempts policy calls (minimum one). A principle whose evaluation never
// succeeds is reported as violated and listed in Errors.
func (c *Checker) Check(ctx context.Context, principles []string, task string, tc model.TaskContext, attempts int) model.PrincipleCheck {
	checked := make([]string, len(principles))
	copy(checked, principles)

	result := model.PrincipleCheck{
		Violations:        []string{},
		PrinciplesChecked: checked,
	}
	for _, p := range principles {
		ok, err := c.evaluate(ctx, p, task, tc, attempts)
		if err != nil {
			c.logger.Warn("principle evaluation failed", "principle", p, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p, err))
			result.Violations = append(result.Violations, p)
			continue
		}
		if !ok {
			result.Violations = append(result.Violations, p)
		}
	}
	result.AllSatisfied = len(result.Violations) == 0
	return result
}

// evaluate calls the policy with jittered exponential backoff between attempts.
func (c *Checker) evaluate(ctx context.Context, principle, task string, tc model.TaskContext, attempts int) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	delay := c.baseDelay
	var err error
	for attempt := range attempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		var ok bool
		ok, err = c.policy(ctx, principle, task, tc)
		if err == nil {
			return ok, nil
		}
		if attempt == attempts-1 || delay <= 0 {
			continue
		}
		jitter := time.Duration(rand.Int64N(int64(delay))) //nolint:gosec // jitter doesn't need crypto-strength randomness
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(delay + jitter):
		}
		delay *= 2
	}
	return false, err
}
