// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package classify matches raw log lines against the active rule set and
// produces Hit records with extracted context (source IP, user, service).
//
// Classification never fails: a line that matches no rule yields no hits,
// and a line whose context cannot be extracted yields hits with absent
// fields. Extraction runs once per line and is shared by every hit that
// line produces.
package classify
