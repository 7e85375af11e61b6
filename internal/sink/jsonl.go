// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package sink

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vigil/internal/classify"
	"github.com/tomtom215/vigil/internal/metrics"
)

// record is the JSONL wire form of a hit. Field order and presence are
// fixed; nil pointers serialize as null so downstream consumers can
// rely on a stable schema.
type record struct {
	Ts       string  `json:"ts"`
	Rule     string  `json:"rule"`
	Severity string  `json:"severity"`
	Path     string  `json:"path"`
	Line     string  `json:"line"`
	SrcIP    *string `json:"src_ip"`
	User     *string `json:"user"`
	Service  *string `json:"service"`
}

// JSONL appends one JSON object per hit to a file it owns exclusively.
// Every record goes out in a single write call with no userspace
// buffering, so records are never torn and never lost in a buffer.
type JSONL struct {
	w      io.Writer
	closer io.Closer
}

// NewJSONL opens (creating if needed) the file at path for appending
// and returns a sink writing to it.
func NewJSONL(path string) (*JSONL, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("jsonl sink: open %s: %w", path, err)
	}
	return &JSONL{w: f, closer: f}, nil
}

// NewJSONLWriter creates a JSONL sink on an arbitrary writer.
// Tests use this to capture records in memory.
func NewJSONLWriter(w io.Writer) *JSONL {
	return &JSONL{w: w}
}

// Write appends the hit as one JSON line.
func (j *JSONL) Write(hit classify.Hit) error {
	rec := record{
		Ts:       hit.Time.UTC().Format(time.RFC3339),
		Rule:     hit.Rule,
		Severity: hit.Severity.String(),
		Path:     hit.Path,
		Line:     hit.Line,
		SrcIP:    hit.SrcIP,
		User:     hit.User,
		Service:  hit.Service,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("jsonl sink: marshal: %w", err)
	}
	data = append(data, '\n')

	if _, err := j.w.Write(data); err != nil {
		return fmt.Errorf("jsonl sink: write: %w", err)
	}
	metrics.RecordJSONLRecord()
	return nil
}

// Close closes the underlying file, if the sink owns one.
func (j *JSONL) Close() error {
	if j.closer == nil {
		return nil
	}
	if err := j.closer.Close(); err != nil {
		return fmt.Errorf("jsonl sink: close: %w", err)
	}
	return nil
}
