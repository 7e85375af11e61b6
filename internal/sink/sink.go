// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package sink

import (
	"fmt"
	"io"

	"github.com/tomtom215/vigil/internal/classify"
)

// Sink consumes allowed hits in pipeline order.
type Sink interface {
	// Write delivers one hit.
	Write(hit classify.Hit) error

	// Close releases the sink's resources after the final Write.
	Close() error
}

// Console writes one human-readable line per hit:
//
//	[<severity>] <rule-name> :: <raw line text>
type Console struct {
	w io.Writer
}

// NewConsole creates a console sink on the given writer, normally
// os.Stdout so alerts stay separable from diagnostics on stderr.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Write emits the hit's console line.
func (c *Console) Write(hit classify.Hit) error {
	_, err := fmt.Fprintf(c.w, "[%s] %s :: %s\n", hit.Severity, hit.Rule, hit.Line)
	if err != nil {
		return fmt.Errorf("console sink: %w", err)
	}
	return nil
}

// Close implements Sink; the console writer is not owned by the sink.
func (c *Console) Close() error {
	return nil
}
