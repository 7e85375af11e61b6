// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package stats tallies allowed hits per rule and per source IP and
// renders the end-of-run summary block.
//
// Rankings are descending by count with first-seen insertion order as
// the tie-break, so identical runs always print identical summaries.
// The summary only makes sense for bounded scans; follow mode never has
// an end of run to report on.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/tomtom215/vigil/internal/classify"
)

// Count is one ranked tally entry.
type Count struct {
	Key string
	N   int
}

// counter is an insertion-ordered tally.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() counter {
	return counter{counts: make(map[string]int)}
}

func (c *counter) inc(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns entries by descending count, first-seen order on ties.
func (c *counter) ranked() []Count {
	out := make([]Count, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, Count{Key: key, N: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].N > out[j].N
	})
	return out
}

// Aggregator accumulates per-rule and per-IP counts for allowed hits.
type Aggregator struct {
	rules counter
	ips   counter
	total int
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		rules: newCounter(),
		ips:   newCounter(),
	}
}

// Record tallies one allowed hit. Hits without a source IP count toward
// the rule tally only.
func (a *Aggregator) Record(hit classify.Hit) {
	a.rules.inc(hit.Rule)
	if hit.SrcIP != nil {
		a.ips.inc(*hit.SrcIP)
	}
	a.total++
}

// Total returns the number of hits recorded.
func (a *Aggregator) Total() int {
	return a.total
}

// RuleCounts returns every rule tally, ranked.
func (a *Aggregator) RuleCounts() []Count {
	return a.rules.ranked()
}

// TopIPs returns the n highest source-IP tallies, ranked.
func (a *Aggregator) TopIPs(n int) []Count {
	ranked := a.ips.ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Render writes the human-readable stats block: rule counts
// most-frequent-first, then the top 5 source IPs.
func (a *Aggregator) Render(w io.Writer) error {
	if _, err := fmt.Fprint(w, "\n--- stats ---\n"); err != nil {
		return err
	}
	for _, c := range a.RuleCounts() {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Key, c.N); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(w, "\nTop IPs:\n"); err != nil {
		return err
	}
	for _, c := range a.TopIPs(5) {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Key, c.N); err != nil {
			return err
		}
	}
	return nil
}
