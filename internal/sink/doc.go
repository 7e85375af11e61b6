// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package sink delivers allowed hits to their destinations: a
// human-readable console stream and an append-only JSONL file.
//
// Sinks are invoked synchronously from the pipeline, one hit at a time,
// in line order. The JSONL sink writes each record as a single
// unbuffered write so an external tailing process never observes a torn
// or buffered-but-lost record. The JSONL schema is fixed: absent values
// serialize as null, keys are never omitted.
package sink
