// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/vigil/internal/logging"
	"github.com/tomtom215/vigil/internal/metrics"
)

const (
	// DefaultPollInterval is how long the follower sleeps between
	// polls when no new data is available.
	DefaultPollInterval = 250 * time.Millisecond

	// DefaultFailureBudget is the number of consecutive read or stat
	// failures tolerated before following fails permanently. At the
	// default poll interval this allows roughly five seconds of
	// uninterrupted failure, enough to ride out a rotation gap.
	DefaultFailureBudget = 20

	// readChunkSize is the fixed buffer size for follow-mode reads.
	readChunkSize = 64 * 1024

	// errorLogInterval throttles transient-failure log lines so a
	// persistent failure does not flood the diagnostic stream at
	// poll frequency.
	errorLogInterval = 5 * time.Second
)

// FollowConfig configures a Follower. Zero values select defaults.
type FollowConfig struct {
	// Path is the file to follow.
	Path string

	// PollInterval overrides DefaultPollInterval when positive.
	PollInterval time.Duration

	// FailureBudget overrides DefaultFailureBudget when positive.
	FailureBudget uint32
}

// Follower tails a file from its current end. New data is read in
// raw byte chunks at a fixed poll cadence and split on '\n'; a line
// is yielded only once its terminator has been seen, so a partially
// written entry is never split across two reads.
//
// Truncation and rotation are detected on idle polls by comparing the
// file size at the path against the current offset. On shrink the
// follower reopens the path and seeks to the new end of file.
// Transient read and stat failures are retried on the polling
// cadence; a circuit breaker turns a run of consecutive failures into
// a permanent error instead of retrying forever.
type Follower struct {
	file     *os.File
	path     string
	interval time.Duration
	offset   int64

	readBuf []byte
	partial []byte
	lines   []string

	breaker  *gobreaker.CircuitBreaker[[]byte]
	logLimit *rate.Limiter
	closed   bool
}

var _ Reader = (*Follower)(nil)

// NewFollower opens cfg.Path and seeks to its end. The path must
// exist and be a regular file; violations fail here, before the first
// poll.
func NewFollower(cfg FollowConfig) (*Follower, error) {
	file, fi, err := openRegular(cfg.Path)
	if err != nil {
		return nil, err
	}
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("seek %s: %w", cfg.Path, err)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	budget := cfg.FailureBudget
	if budget == 0 {
		budget = DefaultFailureBudget
	}

	f := &Follower{
		file:     file,
		path:     cfg.Path,
		interval: interval,
		offset:   end,
		readBuf:  make([]byte, readChunkSize),
		logLimit: rate.NewLimiter(rate.Every(errorLogInterval), 1),
	}
	f.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "follow-reader",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= budget
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				logging.Error().
					Str("breaker", name).
					Str("path", cfg.Path).
					Uint32("failure_budget", budget).
					Msg("Consecutive read failures exhausted retry budget")
			}
		},
	})

	logging.Debug().
		Str("path", cfg.Path).
		Int64("offset", end).
		Int64("size", fi.Size()).
		Dur("poll_interval", interval).
		Msg("Following from end of file")
	return f, nil
}

// Next blocks until a complete line is available, ctx is done, or the
// consecutive-failure budget is exhausted.
func (f *Follower) Next(ctx context.Context) (string, error) {
	for {
		if len(f.lines) > 0 {
			line := f.lines[0]
			f.lines = f.lines[1:]
			return line, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if f.closed {
			return "", fmt.Errorf("follow %s: reader closed", f.path)
		}

		chunk, err := f.breaker.Execute(f.poll)
		metrics.RecordPollCycle()
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return "", fmt.Errorf("follow %s: retry budget exhausted: %w", f.path, err)
			}
			metrics.RecordReadError()
			if f.logLimit.Allow() {
				logging.Warn().
					Err(err).
					Str("path", f.path).
					Msg("Transient failure while following, will retry")
			}
			if serr := f.sleep(ctx); serr != nil {
				return "", serr
			}
			continue
		}
		if len(chunk) == 0 {
			if serr := f.sleep(ctx); serr != nil {
				return "", serr
			}
			continue
		}
		f.feed(chunk)
	}
}

// poll performs one read attempt. It returns freshly read bytes, or
// an empty chunk when the file has no new data. Idle polls stat the
// path to detect truncation or rotation.
func (f *Follower) poll() ([]byte, error) {
	n, err := f.file.Read(f.readBuf)
	if n > 0 {
		f.offset += int64(n)
		chunk := make([]byte, n)
		copy(chunk, f.readBuf[:n])
		return chunk, nil
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read: %w", err)
	}

	fi, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if fi.Size() < f.offset {
		if err := f.reopen(); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// reopen reacquires the path after a detected shrink and seeks to the
// new end of file. Buffered partial data belongs to the old contents
// and is discarded. The current handle is replaced only once the new
// one is usable, so a failed reopen leaves the follower retryable.
func (f *Follower) reopen() error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("reopen: %w", err)
	}
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return fmt.Errorf("seek: %w", err)
	}

	f.file.Close()
	prev := f.offset
	f.file = file
	f.offset = end
	f.partial = f.partial[:0]

	metrics.RecordTruncation()
	logging.Warn().
		Str("path", f.path).
		Int64("previous_offset", prev).
		Int64("new_offset", end).
		Msg("Input shrank, re-seeking to new end of file")
	return nil
}

// feed appends a raw chunk to the pending buffer and extracts every
// complete line from it.
func (f *Follower) feed(chunk []byte) {
	f.partial = append(f.partial, chunk...)
	for {
		i := bytes.IndexByte(f.partial, '\n')
		if i < 0 {
			return
		}
		f.lines = append(f.lines, sanitizeLine(string(f.partial[:i])))
		f.partial = f.partial[i+1:]
	}
}

func (f *Follower) sleep(ctx context.Context) error {
	t := time.NewTimer(f.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Path returns the input path the follower was opened with.
func (f *Follower) Path() string { return f.path }

// Close releases the underlying file.
func (f *Follower) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.file.Close()
}
