// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Acquisition metrics
	LinesRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_lines_read_total",
			Help: "Total number of lines read from the watched file",
		},
	)

	ReadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_read_errors_total",
			Help: "Total number of transient read or stat failures while following",
		},
	)

	Truncations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_truncations_total",
			Help: "Total number of truncation or rotation recoveries (re-seek to new EOF)",
		},
	)

	PollCycles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_poll_cycles_total",
			Help: "Total number of idle follow-mode poll cycles (no new line available)",
		},
	)

	// Classification metrics
	HitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vigil_hits_total",
			Help: "Total number of allowed hits by rule and severity",
		},
		[]string{"rule", "severity"},
	)

	HitsFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_hits_filtered_total",
			Help: "Total number of hits dropped below the minimum severity",
		},
	)

	HitsSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_hits_suppressed_total",
			Help: "Total number of hits suppressed by the deduplication window",
		},
	)

	ClassifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vigil_classify_duration_seconds",
			Help:    "Time spent classifying one line against the rule set",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01},
		},
	)

	// Sink metrics
	JSONLRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vigil_jsonl_records_total",
			Help: "Total number of records appended to the JSONL sink",
		},
	)

	// Outcome metrics
	WorstSeverityRank = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vigil_worst_severity_rank",
			Help: "Rank of the worst allowed severity seen this run (-1 before any hit)",
		},
	)
)

//nolint:gochecknoinits // gauge must read -1 before the first hit
func init() {
	WorstSeverityRank.Set(-1)
}

// RecordLine counts one line pulled from the source.
func RecordLine() {
	LinesRead.Inc()
}

// RecordReadError counts one transient acquisition failure.
func RecordReadError() {
	ReadErrors.Inc()
}

// RecordTruncation counts one truncation/rotation recovery.
func RecordTruncation() {
	Truncations.Inc()
}

// RecordPollCycle counts one idle poll.
func RecordPollCycle() {
	PollCycles.Inc()
}

// RecordHit counts one allowed hit.
func RecordHit(rule, severity string) {
	HitsTotal.WithLabelValues(rule, severity).Inc()
}

// RecordFiltered counts one hit dropped by the severity filter.
func RecordFiltered() {
	HitsFiltered.Inc()
}

// RecordSuppressed counts one hit suppressed by deduplication.
func RecordSuppressed() {
	HitsSuppressed.Inc()
}

// ObserveClassify records the duration of one line classification.
func ObserveClassify(d time.Duration) {
	ClassifyDuration.Observe(d.Seconds())
}

// RecordJSONLRecord counts one appended JSONL record.
func RecordJSONLRecord() {
	JSONLRecords.Inc()
}

// SetWorstSeverityRank publishes the worst severity rank seen so far.
func SetWorstSeverityRank(rank int) {
	WorstSeverityRank.Set(float64(rank))
}
