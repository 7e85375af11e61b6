// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package config

import (
	"fmt"

	"github.com/tomtom215/vigil/internal/rules"
	"github.com/tomtom215/vigil/internal/validation"
)

// Validate checks that the assembled configuration is usable. Struct-tag
// validation runs first, then the semantic checks that tags cannot express.
// Any error here aborts startup before a single input line is read.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %w", verr)
	}

	if err := c.validateSeverities(); err != nil {
		return err
	}

	if err := c.validateRules(); err != nil {
		return err
	}

	return c.validateOps()
}

// validateSeverities confirms the severity tokens parse to known ranks.
// The oneof tags already constrain the strings; parsing here keeps the
// config and rule packages agreeing on the vocabulary.
func (c *Config) validateSeverities() error {
	if c.Filter.MinSeverity != "" {
		if _, err := rules.ParseSeverity(c.Filter.MinSeverity); err != nil {
			return fmt.Errorf("filter.min_severity: %w", err)
		}
	}
	if c.Exit.FailOn != "" {
		if _, err := rules.ParseSeverity(c.Exit.FailOn); err != nil {
			return fmt.Errorf("exit.fail_on: %w", err)
		}
	}
	return nil
}

// validateRules compiles the full rule set once so malformed extra rules
// (bad pattern, unknown severity, duplicate name) surface as configuration
// errors rather than engine-start errors.
func (c *Config) validateRules() error {
	if _, err := rules.Build(c.Rules.Extra, c.Rules.CaseInsensitive); err != nil {
		return fmt.Errorf("rules.extra: %w", err)
	}
	return nil
}

// validateOps checks the operational endpoint settings. The listen address
// format is covered by the hostname_port tag; only presence needs checking
// here.
func (c *Config) validateOps() error {
	if c.Ops.Enabled && c.Ops.Listen == "" {
		return fmt.Errorf("ops.listen is required when ops.enabled is true")
	}
	return nil
}
