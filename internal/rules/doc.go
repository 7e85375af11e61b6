// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package rules defines the detection rule model: named patterns with a
// severity attached, compiled once at startup into an immutable Set.
//
// The rule set is fixed for the lifetime of a process run. There is no
// hot-reloading; changing rules means restarting the watcher. Severities
// form a three-level total order (low < medium < high) used both for
// minimum-severity filtering and for the fail-on exit threshold.
package rules
