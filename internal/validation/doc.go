// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the library in a thread-safe singleton with error translation to
// human-readable messages. The primary consumer is the configuration loader,
// which validates the unmarshaled Config against its struct tags before the
// semantic checks run.
//
// # Quick Start
//
//	type FilterConfig struct {
//	    MinSeverity string `validate:"omitempty,oneof=low medium high"`
//	}
//
//	if verr := validation.ValidateStruct(&cfg); verr != nil {
//	    return fmt.Errorf("invalid configuration: %w", verr)
//	}
//
// # Error Types
//
// ValidationError carries a single field failure (field, tag, param, value,
// translated message). FieldValidationErrors aggregates them and implements
// error with a combined, semicolon-joined message suitable for a fatal
// startup log line.
//
// # Thread Safety
//
// The singleton validator is initialized once and caches struct reflection
// information, so repeated validations of the same type are cheap and safe
// for concurrent use.
package validation
