package cohumain

import "log/slog"

// Option configures a Framework.
type Option func(*resolvedOptions)

// resolvedOptions holds all settings and extension points after applying
// defaults. Unexported; callers use the With* functions.
type resolvedOptions struct {
	domain              string
	safetyMode          SafetyMode
	regulatoryFramework string
	stakeholderType     string
	logger              *slog.Logger
	policy              PrinciplePolicy
	allocator           Allocator
	taskHooks           []TaskHook
	parallelTraces      bool
	agentTimeouts       bool
}

func defaultOptions() resolvedOptions {
	return resolvedOptions{
		domain:          "general",
		safetyMode:      SafetyBalanced,
		stakeholderType: "developer",
		agentTimeouts:   true,
	}
}

// WithDomain sets the application domain reported in compliance reports
// (e.g. "finance", "healthcare"). Defaults to "general".
func WithDomain(domain string) Option {
	return func(o *resolvedOptions) { o.domain = domain }
}

// WithSafetyMode sets the safety mode that drives the delegation threshold.
// Unknown modes behave like SafetyBalanced. Defaults to SafetyBalanced.
func WithSafetyMode(mode SafetyMode) Option {
	return func(o *resolvedOptions) { o.safetyMode = mode }
}

// WithRegulatoryFramework sets the regulatory framework label (e.g. "SEC",
// "HIPAA"). Unset by default; an empty name also leaves it unset.
func WithRegulatoryFramework(name string) Option {
	return func(o *resolvedOptions) { o.regulatoryFramework = name }
}

// WithStakeholderType records who consumes the explanations. Defaults to
// "developer". Carried as metadata only.
func WithStakeholderType(t string) Option {
	return func(o *resolvedOptions) { o.stakeholderType = t }
}

// WithLogger sets the structured logger for the Framework.
// If not set, the default slog logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *resolvedOptions) { o.logger = logger }
}

// WithPrinciplePolicy replaces the default policy (every principle is
// satisfied) for agents that were not given their own. Only the last call wins.
func WithPrinciplePolicy(p PrinciplePolicy) Option {
	return func(o *resolvedOptions) { o.policy = p }
}

// WithAllocator replaces the uniform split used for both responsibility
// attribution and agent contributions. Only the last call wins.
func WithAllocator(a Allocator) Option {
	return func(o *resolvedOptions) { o.allocator = a }
}

// WithTaskHook registers a hook notified after every executed task.
// Multiple hooks may be registered; they run in registration order.
func WithTaskHook(hook TaskHook) Option {
	return func(o *resolvedOptions) { o.taskHooks = append(o.taskHooks, hook) }
}

// WithParallelTraces generates agent traces concurrently. Results keep
// registry order.
func WithParallelTraces(enabled bool) Option {
	return func(o *resolvedOptions) { o.parallelTraces = enabled }
}

// WithAgentTimeouts toggles per-agent timeout enforcement during trace
// generation. Enabled by default.
func WithAgentTimeouts(enabled bool) Option {
	return func(o *resolvedOptions) { o.agentTimeouts = enabled }
}
