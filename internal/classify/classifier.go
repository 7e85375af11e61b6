// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package classify

import (
	"strings"
	"time"

	"github.com/tomtom215/vigil/internal/rules"
)

// Classifier applies a fixed rule set to individual log lines.
// It is stateless apart from the rule set and safe to reuse for the
// whole run.
type Classifier struct {
	set *rules.Set
	now func() time.Time
}

// New creates a Classifier over the given rule set.
func New(set *rules.Set) *Classifier {
	return &Classifier{set: set, now: time.Now}
}

// NewWithClock creates a Classifier with an injected clock.
// Tests use this to pin hit timestamps.
func NewWithClock(set *rules.Set, now func() time.Time) *Classifier {
	return &Classifier{set: set, now: now}
}

// Classify matches one line against every rule and returns one Hit per
// matching rule, in rule order. The extracted context and timestamp are
// computed once and shared by all hits from the line. A line matching
// no rule returns an empty slice; classification never errors.
func (c *Classifier) Classify(line, path string) []Hit {
	line = strings.TrimRight(line, "\n")

	var hits []Hit
	var (
		extracted bool
		ts        time.Time
		srcIP     *string
		user      *string
		service   *string
	)

	for i := range c.set.Rules() {
		rule := &c.set.Rules()[i]
		if !rule.Matches(line) {
			continue
		}

		if !extracted {
			ts = c.now().UTC().Truncate(time.Second)
			srcIP = extractIP(line)
			user = extractUser(line)
			service = inferService(line)
			extracted = true
		}

		hits = append(hits, Hit{
			Time:     ts,
			Rule:     rule.Name,
			Severity: rule.Severity,
			Path:     path,
			Line:     line,
			SrcIP:    srcIP,
			User:     user,
			Service:  service,
		})
	}

	return hits
}
