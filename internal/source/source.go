// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for input validation failures. Both are fatal
// before any line is processed.
var (
	// ErrNotFound indicates the input path does not exist.
	ErrNotFound = errors.New("input file not found")

	// ErrNotRegular indicates the input path exists but is not a
	// regular file (directory, device, socket, etc.).
	ErrNotRegular = errors.New("input is not a regular file")
)

// Reader yields log lines one at a time. Implementations are not safe
// for concurrent use; the engine pulls from a single goroutine.
//
// Next returns the next line with its terminator stripped. Scan-mode
// readers return io.EOF once the file is exhausted. Follow-mode
// readers block until a complete line is available, the context is
// done, or reading fails permanently.
type Reader interface {
	Next(ctx context.Context) (string, error)
	Path() string
	Close() error
}

// openRegular opens path and verifies it refers to a regular file.
// The fstat check runs on the open descriptor so the verdict cannot
// race against a concurrent rename.
func openRegular(path string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		file.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	return file, fi, nil
}

// sanitizeLine strips the trailing terminator and replaces invalid
// UTF-8 sequences with the Unicode replacement character. Matching
// and output downstream always operate on valid UTF-8.
func sanitizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}
	return line
}
