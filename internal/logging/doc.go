// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package logging provides centralized zerolog-based structured logging for Vigil.
//
// All diagnostic output goes through a single global zerolog logger so that
// the engine's own chatter never mixes with the alert stream on stdout: logs
// go to stderr (or a configured writer), alerts go to the console and JSONL
// sinks.
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output for production, console output for development
//   - Run-scoped correlation IDs propagated through context
//   - An slog adapter so suture's sutureslog hook logs through zerolog
//
// # Quick Start
//
//	import "github.com/tomtom215/vigil/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("path", cfg.Input.Path).Msg("Watching file")
//	logging.Error().Err(err).Msg("Read failed")
//
//	// Context-aware logging with the run ID
//	logging.Ctx(ctx).Debug().Int("hits", n).Msg("Line classified")
//
// Always terminate log chains with .Msg() or .Send(); a chain without a
// terminator is never emitted.
package logging
