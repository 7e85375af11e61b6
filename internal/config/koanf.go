// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"vigil.yaml",
	"vigil.yml",
	"/etc/vigil/config.yaml",
	"/etc/vigil/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "VIGIL_CONFIG"

// envPrefix namespaces all configuration environment variables.
const envPrefix = "VIGIL_"

// defaultConfig returns a Config with every default value filled in. These
// are loaded first, then overridden by file, environment, and flags.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:           "",
			Follow:         false,
			PollIntervalMS: 250,
			FailureBudget:  20,
		},
		Rules: RulesConfig{
			CaseInsensitive: false,
			Extra:           nil,
		},
		Filter: FilterConfig{
			MinSeverity: "low",
		},
		Dedup: DedupConfig{
			WindowSeconds: 0, // suppression disabled unless configured
		},
		Exit: ExitConfig{
			FailOn: "", // exit semantics disabled unless configured
		},
		Output: OutputConfig{
			CountOnly: false,
			Stats:     false,
			JSONLPath: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Ops: OpsConfig{
			Enabled: false,
			Listen:  "127.0.0.1:9115",
		},
	}
}

// LoadOptions parameterizes Load. The zero value loads from the default
// search paths with no overrides.
type LoadOptions struct {
	// ConfigPath forces a specific config file. Empty means search
	// DefaultConfigPaths (and ConfigPathEnvVar). A forced path that does
	// not exist is an error; an absent default path is not.
	ConfigPath string

	// Overrides are koanf key paths (e.g. "input.path", "dedup.window_seconds")
	// applied after every other layer. The caller maps command-line flags
	// into this set.
	Overrides map[string]interface{}
}

// Load assembles configuration from layered sources:
//  1. Defaults from defaultConfig
//  2. Optional YAML config file
//  3. VIGIL_* environment variables
//  4. Caller overrides (command-line flags)
//
// The assembled configuration is validated before being returned; any error
// here is fatal to startup.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: config file (optional unless forced)
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	// Layer 4: caller overrides (flags). Paths are disjoint, so apply
	// order does not matter.
	for path, val := range opts.Overrides {
		if err := k.Set(path, val); err != nil {
			return nil, fmt.Errorf("apply override %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile searches for a config file, first via ConfigPathEnvVar,
// then through the default paths. Returns empty when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps VIGIL_* environment variable names to koanf config
// paths. Unmapped variables return empty and are skipped, so arbitrary
// VIGIL_-prefixed environment noise cannot pollute the configuration.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		// Input mappings
		"input_path":       "input.path",
		"follow":           "input.follow",
		"poll_interval_ms": "input.poll_interval_ms",
		"failure_budget":   "input.failure_budget",

		// Rule mappings
		"case_insensitive": "rules.case_insensitive",

		// Filter and dedup mappings
		"min_severity": "filter.min_severity",
		"dedup_window": "dedup.window_seconds",

		// Exit mappings
		"fail_on": "exit.fail_on",

		// Output mappings
		"count_only": "output.count_only",
		"stats":      "output.stats",
		"jsonl_path": "output.jsonl_path",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Ops endpoint mappings
		"ops_enabled": "ops.enabled",
		"ops_listen":  "ops.listen",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped (VIGIL_CONFIG is handled by findConfigFile).
	return ""
}
