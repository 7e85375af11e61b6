// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package metrics provides Prometheus instrumentation for the watch
// pipeline: lines read, hits by rule and severity, suppression and
// filter counts, read errors, truncation recoveries, and sink volume.
//
// Collectors are package-level and registered with the default
// registry via promauto; the follow-mode ops server exposes them on
// /metrics. Scan runs record the same metrics but normally exit before
// anything scrapes them.
package metrics
