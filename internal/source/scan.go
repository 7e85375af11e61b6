// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Scanner reads a file once from the beginning to EOF. A final line
// without a terminator is still yielded before io.EOF.
type Scanner struct {
	file   io.Closer
	br     *bufio.Reader
	path   string
	closed bool
}

var _ Reader = (*Scanner)(nil)

// NewScanner opens path for a single front-to-back read. The path
// must exist and be a regular file; violations fail here, before any
// line is processed.
func NewScanner(path string) (*Scanner, error) {
	file, _, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		file: file,
		br:   bufio.NewReader(file),
		path: path,
	}, nil
}

// Next returns the next line, or io.EOF once the file is exhausted.
func (s *Scanner) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.closed {
		return "", io.EOF
	}
	line, err := s.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return sanitizeLine(line), nil
			}
			return "", io.EOF
		}
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	return sanitizeLine(line), nil
}

// Path returns the input path the scanner was opened with.
func (s *Scanner) Path() string { return s.path }

// Close releases the underlying file.
func (s *Scanner) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.file.Close()
}
