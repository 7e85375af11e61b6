// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package ops serves the follow-mode operational HTTP endpoint:
// /healthz (process liveness), /readyz (reader opened and positioned),
// and /metrics (Prometheus scrape).
//
// The endpoint is disabled by default and never runs in scan mode; a
// bounded scan finishes before a scrape interval would elapse. It
// serves monitoring tools, not browsers, so there is no CORS layer and
// no authentication, matching how the process would sit behind a
// scrape-only network policy.
package ops
