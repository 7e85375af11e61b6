// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/vigil/internal/outcome"
)

// Pipeline matches the engine's Run method.
//
// This interface keeps the wrapper free of an engine import, and lets
// tests substitute a controllable fake. Satisfied by *engine.Engine.
type Pipeline interface {
	// Run executes the pull loop until cancellation or a fatal
	// acquisition/sink error.
	Run(ctx context.Context) (outcome.Outcome, error)
}

// PipelineService wraps the watch pipeline as a supervised service.
//
// The pipeline must not be restarted after a fatal error: its follow
// reader has already burned through the retry budget and a fresh Run on
// the same reader would fail immediately. A fatal error therefore tears
// down the whole tree; the caller retrieves it via FatalErr and maps it
// to exit code 2.
type PipelineService struct {
	pipeline Pipeline
	name     string

	mu       sync.Mutex
	fatalErr error
}

// NewPipelineService creates a pipeline service wrapper.
func NewPipelineService(pipeline Pipeline) *PipelineService {
	return &PipelineService{
		pipeline: pipeline,
		name:     "watch-pipeline",
	}
}

// Serve implements suture.Service. Context cancellation is a clean
// stop; any other pipeline error terminates the supervisor tree.
func (p *PipelineService) Serve(ctx context.Context) error {
	_, err := p.pipeline.Run(ctx)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ctx.Err()
	}

	p.mu.Lock()
	p.fatalErr = err
	p.mu.Unlock()

	return fmt.Errorf("%w: %w", suture.ErrTerminateSupervisorTree, err)
}

// FatalErr returns the pipeline error that terminated the tree, or nil
// after a clean stop.
func (p *PipelineService) FatalErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fatalErr
}

// String implements fmt.Stringer for supervisor log messages.
func (p *PipelineService) String() string {
	return p.name
}
