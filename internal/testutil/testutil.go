// Package testutil provides shared fixtures for pipeline tests: a quiet
// logger, agent constructors, and the reference two-agent finance team.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/cohumain/internal/agent"
)

// TestLogger returns a logger for test output. It is silent unless
// COHUMAIN_TEST_LOG is set, in which case warnings and above go to stderr.
func TestLogger() *slog.Logger {
	if os.Getenv("COHUMAIN_TEST_LOG") == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// MustAgent builds an agent or fails the test.
func MustAgent(t testing.TB, spec agent.Spec, opts ...agent.Option) *agent.Agent {
	t.Helper()
	a, err := agent.New(spec, opts...)
	require.NoError(t, err)
	return a
}

// FinanceSpecs is the reference team: Alice (0.90) and Bob (0.85).
// Under the balanced mode neither delegates and their weighted confidence
// is about 0.875.
func FinanceSpecs() []agent.Spec {
	return []agent.Spec{
		{
			Name:                     "Alice",
			Role:                     "Financial Analyst",
			Expertise:                0.9,
			Capabilities:             []string{"portfolio_analysis", "market_research"},
			ConstitutionalPrinciples: []string{"Be accurate"},
		},
		{
			Name:         "Bob",
			Role:         "Risk Manager",
			Expertise:    0.85,
			Capabilities: []string{"risk_assessment"},
		},
	}
}

// FinanceTeam builds the reference team.
func FinanceTeam(t testing.TB, opts ...agent.Option) []*agent.Agent {
	t.Helper()
	specs := FinanceSpecs()
	out := make([]*agent.Agent, len(specs))
	for i, s := range specs {
		out[i] = MustAgent(t, s, opts...)
	}
	return out
}
