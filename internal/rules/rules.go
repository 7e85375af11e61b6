// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package rules

import (
	"fmt"
	"regexp"
)

// Rule is a single detection rule: a named, compiled pattern with a
// severity. Immutable once built.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity Severity
}

// Matches reports whether the rule's pattern matches anywhere in line.
func (r *Rule) Matches(line string) bool {
	return r.Pattern.MatchString(line)
}

// Spec is the declarative form of a rule, as it appears in configuration
// before compilation.
type Spec struct {
	Name     string `koanf:"name" json:"name"`
	Pattern  string `koanf:"pattern" json:"pattern"`
	Severity string `koanf:"severity" json:"severity"`
}

// canonical is the built-in rule set, in evaluation order.
var canonical = []Spec{
	{Name: "failed_password", Pattern: `\bFailed password\b`, Severity: "high"},
	{Name: "accepted_password", Pattern: `\bAccepted password\b`, Severity: "low"},
	{Name: "sudo", Pattern: `^\w+\s+sudo:|\bsudo:`, Severity: "medium"},
}

// Set is an ordered, immutable collection of compiled rules. The active
// set is fixed for a process run; build it once at startup and share it.
type Set struct {
	rules           []Rule
	caseInsensitive bool
}

// Default builds the canonical rule set: failed_password (high),
// accepted_password (low), and sudo (medium).
func Default(caseInsensitive bool) (*Set, error) {
	return Build(nil, caseInsensitive)
}

// Build compiles the canonical rules followed by any extra specs, in
// order. Any invalid pattern, unknown severity, or duplicate name fails
// the whole build; rule errors are configuration errors, never per-line
// errors.
func Build(extra []Spec, caseInsensitive bool) (*Set, error) {
	specs := make([]Spec, 0, len(canonical)+len(extra))
	specs = append(specs, canonical...)
	specs = append(specs, extra...)

	set := &Set{
		rules:           make([]Rule, 0, len(specs)),
		caseInsensitive: caseInsensitive,
	}
	seen := make(map[string]struct{}, len(specs))

	for _, spec := range specs {
		rule, err := compile(spec, caseInsensitive)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[rule.Name]; dup {
			return nil, fmt.Errorf("rule %q: duplicate name", rule.Name)
		}
		seen[rule.Name] = struct{}{}
		set.rules = append(set.rules, rule)
	}

	return set, nil
}

// compile turns one Spec into a Rule.
func compile(spec Spec, caseInsensitive bool) (Rule, error) {
	if spec.Name == "" {
		return Rule{}, fmt.Errorf("rule with pattern %q: empty name", spec.Pattern)
	}

	severity, err := ParseSeverity(spec.Severity)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", spec.Name, err)
	}

	pattern := spec.Pattern
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: invalid pattern: %w", spec.Name, err)
	}

	return Rule{Name: spec.Name, Pattern: re, Severity: severity}, nil
}

// Rules returns the rules in evaluation order. The returned slice is
// shared; callers must not modify it.
func (s *Set) Rules() []Rule {
	return s.rules
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

// CaseInsensitive reports whether the set was compiled case-insensitively.
func (s *Set) CaseInsensitive() bool {
	return s.caseInsensitive
}
