// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package source reads log lines from a file in either scan or follow
// mode. Scan mode reads the file once from the beginning to EOF and
// stops. Follow mode seeks to the end of the file and polls for newly
// appended lines, surviving truncation and rotation by re-seeking to
// the new end of file.
//
// Both modes deliver lines through the same pull-based Reader
// interface, with trailing line terminators stripped and invalid
// UTF-8 sequences replaced so that downstream matching never sees a
// decode failure.
package source
