// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordHit_Labels(t *testing.T) {
	before := testutil.ToFloat64(HitsTotal.WithLabelValues("failed_password", "high"))

	RecordHit("failed_password", "high")
	RecordHit("failed_password", "high")

	after := testutil.ToFloat64(HitsTotal.WithLabelValues("failed_password", "high"))
	if after-before != 2 {
		t.Errorf("hits delta = %v, want 2", after-before)
	}
}

func TestRecordCounters(t *testing.T) {
	tests := []struct {
		name    string
		record  func()
		counter prometheus.Counter
	}{
		{"LinesRead", RecordLine, LinesRead},
		{"ReadErrors", RecordReadError, ReadErrors},
		{"Truncations", RecordTruncation, Truncations},
		{"PollCycles", RecordPollCycle, PollCycles},
		{"HitsFiltered", RecordFiltered, HitsFiltered},
		{"HitsSuppressed", RecordSuppressed, HitsSuppressed},
		{"JSONLRecords", RecordJSONLRecord, JSONLRecords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(tt.counter)
			tt.record()
			after := testutil.ToFloat64(tt.counter)
			if after-before != 1 {
				t.Errorf("%s delta = %v, want 1", tt.name, after-before)
			}
		})
	}
}

func TestSetWorstSeverityRank(t *testing.T) {
	SetWorstSeverityRank(2)
	if got := testutil.ToFloat64(WorstSeverityRank); got != 2 {
		t.Errorf("WorstSeverityRank = %v, want 2", got)
	}

	SetWorstSeverityRank(-1)
	if got := testutil.ToFloat64(WorstSeverityRank); got != -1 {
		t.Errorf("WorstSeverityRank = %v, want -1", got)
	}
}

func TestObserveClassify(t *testing.T) {
	ObserveClassify(50 * time.Microsecond)

	var metric dto.Metric
	if err := ClassifyDuration.Write(&metric); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if metric.Histogram.GetSampleCount() == 0 {
		t.Error("expected at least one classify duration sample")
	}
}

func TestMetricGathering(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		// Lint warnings on our own metrics indicate naming drift.
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
