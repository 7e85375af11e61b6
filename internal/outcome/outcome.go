// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package outcome tracks the worst severity observed across a run and
// maps it to the process exit code.
//
// The policy is a three-state machine: no hits seen, hits seen below the
// fail threshold, hits seen at or above it. The third state is terminal;
// later low-severity hits never downgrade it. Threshold failure is
// opt-in and evaluated only at the end of a bounded scan. Count-based
// thresholds ("no more than N high hits") belong to external wrappers,
// not here.
package outcome

import "github.com/tomtom215/vigil/internal/rules"

// Process exit codes.
const (
	// ExitOK means the run completed without a qualifying hit, including
	// a follow run stopped by interrupt.
	ExitOK = 0

	// ExitThreshold means a scan saw at least one allowed hit at or
	// above the fail-on severity.
	ExitThreshold = 1

	// ExitFatal means a configuration or input error stopped the run
	// before or during processing.
	ExitFatal = 2
)

// State is the policy's position in its state machine.
type State int

const (
	// StateNoHits is the initial state: no allowed hit observed yet.
	StateNoHits State = iota

	// StateBelowThreshold means hits were observed, all below the
	// threshold (or the threshold is disabled).
	StateBelowThreshold

	// StateAtOrAboveThreshold is terminal: some allowed hit reached the
	// fail-on severity.
	StateAtOrAboveThreshold
)

// Status is the final pass/fail verdict of a run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Outcome is the final decision derived from the policy state.
type Outcome struct {
	Status    Status
	WorstRank int // rank of the worst allowed severity seen; -1 if none
	ExitCode  int
}

// Policy accumulates allowed-hit severities into an exit decision.
type Policy struct {
	failOn  rules.Severity
	enabled bool
	state   State
	worst   rules.Severity
	seen    bool
}

// NewPolicy creates a Policy. When enabled is false the terminal state
// is unreachable and the run always passes. An enabled policy with an
// invalid threshold falls back to high.
func NewPolicy(failOn rules.Severity, enabled bool) *Policy {
	if enabled && !failOn.Valid() {
		failOn = rules.SeverityHigh
	}
	return &Policy{failOn: failOn, enabled: enabled}
}

// Observe folds one allowed hit's severity into the state machine.
// Transitions are monotonic: once at or above the threshold, the state
// never moves back.
func (p *Policy) Observe(sev rules.Severity) {
	if !p.seen || sev.Rank() > p.worst.Rank() {
		p.worst = sev
	}
	p.seen = true

	if p.state == StateAtOrAboveThreshold {
		return
	}
	if p.enabled && sev.AtOrAbove(p.failOn) {
		p.state = StateAtOrAboveThreshold
		return
	}
	p.state = StateBelowThreshold
}

// State returns the current state.
func (p *Policy) State() State {
	return p.state
}

// WorstSeverity returns the worst allowed severity observed so far and
// whether any hit has been observed at all.
func (p *Policy) WorstSeverity() (rules.Severity, bool) {
	return p.worst, p.seen
}

// Result maps the final state to the run's Outcome. Meaningful at the
// end of a bounded scan; follow runs never reach a natural end.
func (p *Policy) Result() Outcome {
	worstRank := -1
	if p.seen {
		worstRank = p.worst.Rank()
	}

	if p.state == StateAtOrAboveThreshold {
		return Outcome{Status: StatusFail, WorstRank: worstRank, ExitCode: ExitThreshold}
	}
	return Outcome{Status: StatusPass, WorstRank: worstRank, ExitCode: ExitOK}
}
