// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package engine runs the watch pipeline: it pulls lines from a source
// reader, classifies them against the rule set, applies the severity
// filter and the deduplication window, and delivers surviving hits to
// the sinks, the aggregator, and the exit policy.
//
// The pipeline is a single-goroutine pull loop. Every hit reaches every
// sink and the aggregator in the exact order its line was read, and all
// hits from one line are delivered before the next line is requested.
// In scan mode the loop ends at EOF and yields the run's Outcome; in
// follow mode it runs until the context is cancelled.
package engine
