// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package dedup suppresses repeated hits that share a (rule, user) key
// within a trailing time window.
//
// Suppression is silent and total: a suppressed hit reaches no sink, no
// statistics, and no severity tracking. Times are measured on Go's
// monotonic clock so wall-clock adjustments cannot re-open or extend a
// window.
package dedup

import (
	"time"

	"github.com/tomtom215/vigil/internal/classify"
)

// key identifies hits that suppress each other. An absent user means
// every userless hit of that rule shares one key.
type key struct {
	rule string
	user string
}

// Deduplicator tracks the last allowed time per key. State lives for the
// process; growth is bounded by the cardinality of (rule x user).
type Deduplicator struct {
	window   time.Duration
	lastSeen map[key]time.Time
	now      func() time.Time
}

// New creates a Deduplicator with the given window. A window <= 0
// disables deduplication entirely (the default mode).
func New(window time.Duration) *Deduplicator {
	return NewWithClock(window, time.Now)
}

// NewWithClock creates a Deduplicator with an injected clock for tests.
func NewWithClock(window time.Duration, now func() time.Time) *Deduplicator {
	return &Deduplicator{
		window:   window,
		lastSeen: make(map[key]time.Time),
		now:      now,
	}
}

// Enabled reports whether a positive window is configured.
func (d *Deduplicator) Enabled() bool {
	return d.window > 0
}

// Allow decides whether the hit passes. Disabled deduplication always
// allows. Otherwise a hit is suppressed when a prior allowed hit with
// the same (rule, user) key is less than one window old; an allowed hit
// records the current time against its key.
func (d *Deduplicator) Allow(hit classify.Hit) bool {
	if d.window <= 0 {
		return true
	}

	k := key{rule: hit.Rule}
	if hit.User != nil {
		k.user = *hit.User
	}

	now := d.now()
	if prev, ok := d.lastSeen[k]; ok && now.Sub(prev) < d.window {
		return false
	}
	d.lastSeen[k] = now
	return true
}

// TrackedKeys returns the number of distinct keys recorded so far.
func (d *Deduplicator) TrackedKeys() int {
	return len(d.lastSeen)
}
