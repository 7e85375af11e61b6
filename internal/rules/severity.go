// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package rules

import (
	"fmt"
	"strings"
)

// Severity indicates the severity level of a detection rule and of the
// hits it produces.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// severityRanks maps each severity to its position in the total order.
var severityRanks = map[Severity]int{
	SeverityLow:    0,
	SeverityMedium: 1,
	SeverityHigh:   2,
}

// ParseSeverity converts a string to a Severity.
// Matching is case-insensitive; anything outside {low, medium, high}
// is rejected.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := severityRanks[sev]; !ok {
		return "", fmt.Errorf("invalid severity %q (must be low, medium, or high)", s)
	}
	return sev, nil
}

// Valid reports whether the severity is one of the three defined levels.
func (s Severity) Valid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the severity's position in the total order: low=0,
// medium=1, high=2. Unknown severities rank below low.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return -1
}

// AtOrAbove reports whether s ranks at or above other.
func (s Severity) AtOrAbove(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// String returns the severity as its lowercase token.
func (s Severity) String() string {
	return string(s)
}
