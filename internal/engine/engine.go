// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/tomtom215/vigil/internal/classify"
	"github.com/tomtom215/vigil/internal/dedup"
	"github.com/tomtom215/vigil/internal/logging"
	"github.com/tomtom215/vigil/internal/metrics"
	"github.com/tomtom215/vigil/internal/outcome"
	"github.com/tomtom215/vigil/internal/rules"
	"github.com/tomtom215/vigil/internal/sink"
	"github.com/tomtom215/vigil/internal/source"
	"github.com/tomtom215/vigil/internal/stats"
)

// Config wires the pipeline's collaborators. All fields except Sinks
// are required; the engine owns none of them and closes nothing.
type Config struct {
	// Reader supplies log lines. A Scanner ends the run at EOF; a
	// Follower runs until the context is cancelled.
	Reader source.Reader

	// Classifier matches lines against the active rule set.
	Classifier *classify.Classifier

	// Dedup suppresses repeats within the configured window. A
	// disabled deduplicator (window <= 0) passes everything through.
	Dedup *dedup.Deduplicator

	// Stats tallies allowed hits for the end-of-run summary.
	Stats *stats.Aggregator

	// Policy folds allowed-hit severities into the exit decision.
	Policy *outcome.Policy

	// Sinks receive every allowed hit, in order. May be empty
	// (count-only scans with no JSONL output).
	Sinks []sink.Sink

	// MinSeverity drops hits ranked below it before dedup, sinks,
	// stats, and the exit policy.
	MinSeverity rules.Severity
}

// Engine is the single-threaded watch pipeline. Run may be called once;
// the engine is not reusable across runs.
type Engine struct {
	cfg   Config
	runID string

	running atomic.Bool

	lines      uint64
	allowed    uint64
	filtered   uint64
	suppressed uint64
}

// New validates the wiring and returns a ready engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Reader == nil {
		return nil, errors.New("engine: reader is required")
	}
	if cfg.Classifier == nil {
		return nil, errors.New("engine: classifier is required")
	}
	if cfg.Dedup == nil {
		return nil, errors.New("engine: deduplicator is required")
	}
	if cfg.Stats == nil {
		return nil, errors.New("engine: aggregator is required")
	}
	if cfg.Policy == nil {
		return nil, errors.New("engine: exit policy is required")
	}
	return &Engine{
		cfg:   cfg,
		runID: logging.NewRunID(),
	}, nil
}

// RunID returns the run correlation ID attached to the engine's logs.
func (e *Engine) RunID() string {
	return e.runID
}

// Running reports whether the pull loop is active. The ops readiness
// probe uses this: the engine flips to running after the reader has
// been handed over opened and positioned.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// Run executes the pull loop until the source is exhausted (scan), the
// context is cancelled (follow interrupt), or acquisition fails
// permanently. The returned Outcome is meaningful when err is nil; a
// cancelled run reports err == ctx.Err() and callers treat it as a
// clean stop.
func (e *Engine) Run(ctx context.Context) (outcome.Outcome, error) {
	e.running.Store(true)
	defer e.running.Store(false)

	logging.Info().
		Str("run_id", e.runID).
		Str("path", e.cfg.Reader.Path()).
		Str("min_severity", e.cfg.MinSeverity.String()).
		Msg("Pipeline started")

	for {
		line, err := e.cfg.Reader.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return e.finish(), nil
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				e.logSummary(outcome.ExitOK)
				return outcome.Outcome{Status: outcome.StatusPass, WorstRank: e.worstRank(), ExitCode: outcome.ExitOK}, err
			default:
				return outcome.Outcome{Status: outcome.StatusFail, WorstRank: e.worstRank(), ExitCode: outcome.ExitFatal},
					fmt.Errorf("engine: acquisition failed: %w", err)
			}
		}
		if err := e.processLine(line); err != nil {
			return outcome.Outcome{Status: outcome.StatusFail, WorstRank: e.worstRank(), ExitCode: outcome.ExitFatal}, err
		}
	}
}

// processLine pushes one line through classify, filter, dedup, sinks,
// stats, and the exit policy. All hits from the line are handled before
// control returns to the pull loop.
func (e *Engine) processLine(line string) error {
	metrics.RecordLine()
	e.lines++

	start := time.Now()
	hits := e.cfg.Classifier.Classify(line, e.cfg.Reader.Path())
	metrics.ObserveClassify(time.Since(start))

	for _, hit := range hits {
		if !hit.Severity.AtOrAbove(e.cfg.MinSeverity) {
			metrics.RecordFiltered()
			e.filtered++
			continue
		}
		if !e.cfg.Dedup.Allow(hit) {
			metrics.RecordSuppressed()
			e.suppressed++
			continue
		}

		for _, s := range e.cfg.Sinks {
			if err := s.Write(hit); err != nil {
				return fmt.Errorf("engine: %w", err)
			}
		}
		e.cfg.Stats.Record(hit)
		e.cfg.Policy.Observe(hit.Severity)
		metrics.RecordHit(hit.Rule, hit.Severity.String())
		metrics.SetWorstSeverityRank(e.worstRank())
		e.allowed++
	}
	return nil
}

// finish closes out a bounded scan: evaluate the policy, log the run
// summary, and hand the Outcome to the caller for exit-code mapping.
func (e *Engine) finish() outcome.Outcome {
	result := e.cfg.Policy.Result()
	e.logSummary(result.ExitCode)
	return result
}

// logSummary emits the structured end-of-run line.
func (e *Engine) logSummary(exitCode int) {
	worst := "none"
	if sev, seen := e.cfg.Policy.WorstSeverity(); seen {
		worst = sev.String()
	}
	logging.Info().
		Str("run_id", e.runID).
		Uint64("lines_read", e.lines).
		Uint64("hits_allowed", e.allowed).
		Uint64("hits_filtered", e.filtered).
		Uint64("hits_suppressed", e.suppressed).
		Str("worst_severity", worst).
		Int("exit_code", exitCode).
		Msg("Pipeline finished")
}

// worstRank returns the rank of the worst allowed severity seen, or -1
// before the first allowed hit.
func (e *Engine) worstRank() int {
	if sev, seen := e.cfg.Policy.WorstSeverity(); seen {
		return sev.Rank()
	}
	return -1
}
