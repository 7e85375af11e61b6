// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package classify

import (
	"time"

	"github.com/tomtom215/vigil/internal/rules"
)

// Hit is a single rule match against a single log line, with extracted
// context. SrcIP, User, and Service are nil when the line carries no
// extractable value; that is normal, not an error.
type Hit struct {
	// Time is the observation time, UTC, second precision.
	Time time.Time

	// Rule is the name of the rule that matched.
	Rule string

	// Severity is the matching rule's severity.
	Severity rules.Severity

	// Path is the source file the line was read from.
	Path string

	// Line is the raw line text with the trailing newline stripped.
	Line string

	// SrcIP is the normalized dotted-quad source address, if present.
	SrcIP *string

	// User is the extracted user name, if present.
	User *string

	// Service is the inferred service ("sshd" or "sudo"), if present.
	Service *string
}
