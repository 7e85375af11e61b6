// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

/*
Package config provides centralized configuration management for Vigil.

Configuration is loaded via Koanf v2 with layered sources, highest priority
last:

 1. Defaults: built-in values for every optional setting
 2. Config file: optional YAML file (vigil.yaml, or VIGIL_CONFIG)
 3. Environment variables: VIGIL_* with an explicit key mapping
 4. Overrides: command-line flags applied by the caller

# Configuration Structure

	input:
	  path: /var/log/auth.log      # file to scan or follow (required)
	  follow: false                # tail new lines instead of one-shot scan
	  poll_interval_ms: 250        # follow-mode poll cadence
	  failure_budget: 20           # consecutive read failures before fatal
	rules:
	  case_insensitive: false      # compile all patterns case-insensitively
	  extra:                       # additional rules after the built-ins
	    - name: invalid_user
	      pattern: 'Invalid user'
	      severity: medium
	filter:
	  min_severity: low            # drop hits ranked below this
	dedup:
	  window_seconds: 0            # 0 disables duplicate suppression
	exit:
	  fail_on: ""                  # scan mode: exit 1 at/above this severity
	output:
	  count_only: false            # suppress per-hit console lines
	  stats: false                 # print the end-of-scan stats block
	  jsonl_path: ""               # append one JSON record per hit
	logging:
	  level: info
	  format: console              # console or json
	  caller: false
	ops:
	  enabled: false               # follow-mode health + metrics endpoint
	  listen: 127.0.0.1:9115

# Environment Variables

Every key maps to one VIGIL_* variable, e.g. VIGIL_INPUT_PATH,
VIGIL_MIN_SEVERITY, VIGIL_DEDUP_WINDOW, VIGIL_JSONL_PATH, VIGIL_LOG_LEVEL.
Unknown VIGIL_* variables are ignored rather than treated as config keys, so
unrelated environment noise cannot leak into the configuration. Extra rules
can only be declared in the config file.

# Validation

Load validates the assembled configuration twice: struct-tag validation
through internal/validation (go-playground/validator), then semantic checks
(severity tokens, extra rule compilation). Any failure aborts startup before
a single input line is read.

# Thread Safety

Config is immutable after Load and safe for concurrent reads.
*/
package config
