// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package config

import (
	"time"

	"github.com/tomtom215/vigil/internal/rules"
)

// Config holds all application configuration assembled from defaults, an
// optional YAML file, VIGIL_* environment variables, and caller-supplied
// overrides (command-line flags). It is immutable after Load and safe for
// concurrent read access.
type Config struct {
	Input   InputConfig   `koanf:"input"`
	Rules   RulesConfig   `koanf:"rules"`
	Filter  FilterConfig  `koanf:"filter"`
	Dedup   DedupConfig   `koanf:"dedup"`
	Exit    ExitConfig    `koanf:"exit"`
	Output  OutputConfig  `koanf:"output"`
	Logging LoggingConfig `koanf:"logging"`
	Ops     OpsConfig     `koanf:"ops"`
}

// InputConfig selects the log file and the acquisition mode.
//
// Environment Variables:
//   - VIGIL_INPUT_PATH: file to scan or follow (required)
//   - VIGIL_FOLLOW: tail new lines instead of a one-shot scan
//   - VIGIL_POLL_INTERVAL_MS: follow-mode poll cadence in milliseconds
//   - VIGIL_FAILURE_BUDGET: consecutive read/stat failures before fatal
type InputConfig struct {
	Path           string `koanf:"path" validate:"required"`
	Follow         bool   `koanf:"follow"`
	PollIntervalMS int    `koanf:"poll_interval_ms" validate:"min=1,max=60000"`
	FailureBudget  uint32 `koanf:"failure_budget" validate:"min=1,max=100000"`
}

// RulesConfig controls pattern compilation and extra detection rules.
// Extra rules are appended after the built-in set at startup and are fixed
// for the lifetime of the run; they can only be declared in the config file.
type RulesConfig struct {
	CaseInsensitive bool         `koanf:"case_insensitive"`
	Extra           []rules.Spec `koanf:"extra"`
}

// FilterConfig drops hits ranked below the configured severity before they
// reach deduplication, sinks, or stats.
type FilterConfig struct {
	MinSeverity string `koanf:"min_severity" validate:"omitempty,oneof=low medium high"`
}

// DedupConfig sizes the duplicate-suppression window. Zero or negative
// disables suppression entirely.
type DedupConfig struct {
	WindowSeconds float64 `koanf:"window_seconds"`
}

// ExitConfig opts in to threshold-driven exit semantics. When FailOn is set
// and the run is a scan, any surviving hit at or above that severity makes
// the process exit 1. Empty disables the check; follow mode ignores it.
type ExitConfig struct {
	FailOn string `koanf:"fail_on" validate:"omitempty,oneof=low medium high"`
}

// OutputConfig selects the sinks for surviving hits.
type OutputConfig struct {
	CountOnly bool   `koanf:"count_only"`
	Stats     bool   `koanf:"stats"`
	JSONLPath string `koanf:"jsonl_path"`
}

// LoggingConfig configures the zerolog diagnostic stream (stderr). It never
// affects the alert output on stdout.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// OpsConfig configures the follow-mode operational HTTP endpoint serving
// /healthz, /readyz, and /metrics. Disabled by default; ignored in scan mode.
type OpsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Listen  string `koanf:"listen" validate:"omitempty,hostname_port"`
}

// MinSeverity returns the typed severity floor. The zero value of the
// config (empty string) means low, i.e. keep everything.
func (c *Config) MinSeverity() rules.Severity {
	if c.Filter.MinSeverity == "" {
		return rules.SeverityLow
	}
	return rules.Severity(c.Filter.MinSeverity)
}

// FailOn returns the typed fail-on threshold and whether it is enabled.
func (c *Config) FailOn() (rules.Severity, bool) {
	if c.Exit.FailOn == "" {
		return "", false
	}
	return rules.Severity(c.Exit.FailOn), true
}

// DedupWindow converts the configured window to a duration. Zero or
// negative means suppression is disabled.
func (c *Config) DedupWindow() time.Duration {
	return time.Duration(c.Dedup.WindowSeconds * float64(time.Second))
}

// PollInterval converts the configured poll cadence to a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Input.PollIntervalMS) * time.Millisecond
}

// StatsEnabled reports whether the end-of-scan stats block should print.
// Count-only implies stats, since suppressing per-hit lines without the
// summary would leave no output at all.
func (c *Config) StatsEnabled() bool {
	return c.Output.Stats || c.Output.CountOnly
}
