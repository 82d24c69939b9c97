// Package config loads and validates framework configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ashita-ai/cohumain/internal/model"
)

// Config holds all framework configuration.
type Config struct {
	// Framework settings.
	Domain              string
	SafetyMode          model.SafetyMode
	RegulatoryFramework string
	StakeholderType     string

	// Pipeline settings.
	ParallelTraces       bool
	EnforceAgentTimeouts bool
	DefaultAgentTimeout  time.Duration // Applied to agents that declare no timeout.
	DefaultMaxRetries    int           // Applied to agents that declare no retry budget.

	// OTEL settings.
	OTELEndpoint string
	ServiceName  string
	OTELInsecure bool

	// Operational settings.
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
// Every malformed variable is reported, not just the first.
func Load() (Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := Config{
		Domain:              envStr("COHUMAIN_DOMAIN", "general"),
		SafetyMode:          model.SafetyMode(envStr("COHUMAIN_SAFETY_MODE", string(model.SafetyBalanced))),
		RegulatoryFramework: envStr("COHUMAIN_REGULATORY_FRAMEWORK", ""),
		StakeholderType:     envStr("COHUMAIN_STAKEHOLDER_TYPE", "developer"),
		OTELEndpoint:        envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:         envStr("OTEL_SERVICE_NAME", "cohumain"),
		LogLevel:            envStr("COHUMAIN_LOG_LEVEL", "info"),
	}

	var err error
	cfg.ParallelTraces, err = envBool("COHUMAIN_PARALLEL_TRACES", false)
	collect(err)
	cfg.EnforceAgentTimeouts, err = envBool("COHUMAIN_ENFORCE_AGENT_TIMEOUTS", true)
	collect(err)
	cfg.DefaultAgentTimeout, err = envDuration("COHUMAIN_DEFAULT_AGENT_TIMEOUT", 60*time.Second)
	collect(err)
	cfg.DefaultMaxRetries, err = envInt("COHUMAIN_DEFAULT_MAX_RETRIES", 3)
	collect(err)
	cfg.OTELInsecure, err = envBool("OTEL_EXPORTER_OTLP_INSECURE", false)
	collect(err)

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that values are in range.
func (c Config) Validate() error {
	if !c.SafetyMode.Known() {
		return fmt.Errorf("config: COHUMAIN_SAFETY_MODE %q is not one of permissive, balanced, strict, maximum", c.SafetyMode)
	}
	if c.DefaultAgentTimeout <= 0 {
		return fmt.Errorf("config: COHUMAIN_DEFAULT_AGENT_TIMEOUT must be positive")
	}
	if c.DefaultMaxRetries < 1 {
		return fmt.Errorf("config: COHUMAIN_DEFAULT_MAX_RETRIES must be at least 1")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: COHUMAIN_LOG_LEVEL: %w", err)
	}
	return nil
}

// SlogLevel returns the configured log level, falling back to info.
func (c Config) SlogLevel() slog.Level {
	lvl, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLogLevel maps debug, info, warn, and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid integer", key, v)
	}
	return n, nil
}

func envBool(key string, defaultVal bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s=%q is not a valid boolean", key, v)
	}
	return b, nil
}

func envDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration", key, v)
	}
	return d, nil
}
