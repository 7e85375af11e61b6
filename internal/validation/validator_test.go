// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

// watchSettings mirrors the shape of the configuration sections the loader
// validates.
type watchSettings struct {
	Path          string  `validate:"required"`
	MinSeverity   string  `validate:"omitempty,oneof=low medium high"`
	WindowSeconds float64 `validate:"gte=0"`
	PollInterval  int     `validate:"min=1,max=60000"`
	Listen        string  `validate:"omitempty,hostname_port"`
}

func validSettings() watchSettings {
	return watchSettings{
		Path:          "/var/log/auth.log",
		MinSeverity:   "low",
		WindowSeconds: 0,
		PollInterval:  250,
		Listen:        "127.0.0.1:9115",
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*watchSettings)
	}{
		{name: "all fields set", mutate: func(*watchSettings) {}},
		{
			name: "optional fields empty",
			mutate: func(s *watchSettings) {
				s.MinSeverity = ""
				s.Listen = ""
			},
		},
		{
			name: "boundary poll interval",
			mutate: func(s *watchSettings) {
				s.PollInterval = 60000
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSettings()
			tt.mutate(&input)

			if err := ValidateStruct(&input); err != nil {
				t.Errorf("ValidateStruct() returned unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*watchSettings)
		wantField string
		wantTag   string
	}{
		{
			name:      "missing required path",
			mutate:    func(s *watchSettings) { s.Path = "" },
			wantField: "Path",
			wantTag:   "required",
		},
		{
			name:      "unknown severity",
			mutate:    func(s *watchSettings) { s.MinSeverity = "critical" },
			wantField: "MinSeverity",
			wantTag:   "oneof",
		},
		{
			name:      "negative window",
			mutate:    func(s *watchSettings) { s.WindowSeconds = -1 },
			wantField: "WindowSeconds",
			wantTag:   "gte",
		},
		{
			name:      "poll interval too low",
			mutate:    func(s *watchSettings) { s.PollInterval = 0 },
			wantField: "PollInterval",
			wantTag:   "min",
		},
		{
			name:      "poll interval too high",
			mutate:    func(s *watchSettings) { s.PollInterval = 100000 },
			wantField: "PollInterval",
			wantTag:   "max",
		},
		{
			name:      "bad listen address",
			mutate:    func(s *watchSettings) { s.Listen = "not a listen address" },
			wantField: "Listen",
			wantTag:   "hostname_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSettings()
			tt.mutate(&input)

			err := ValidateStruct(&input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			errs := err.Errors()
			if len(errs) == 0 {
				t.Fatal("FieldValidationErrors should contain at least one error")
			}

			found := false
			for _, e := range errs {
				if e.Field() == tt.wantField && e.Tag() == tt.wantTag {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("Expected error on field %s with tag %s, got: %v", tt.wantField, tt.wantTag, errs)
			}
		})
	}
}

func TestValidateStruct_MultipleErrors(t *testing.T) {
	input := validSettings()
	input.Path = ""
	input.MinSeverity = "fatal"

	err := ValidateStruct(&input)
	if err == nil {
		t.Fatal("ValidateStruct() should have returned an error")
	}

	if got := len(err.Errors()); got != 2 {
		t.Errorf("Errors() count = %d, want 2", got)
	}

	msg := err.Error()
	if !strings.Contains(msg, ";") {
		t.Errorf("Error() = %q, want semicolon-joined messages", msg)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	err := ValidateStruct("not a struct")
	if err == nil {
		t.Fatal("ValidateStruct() should reject a non-struct value")
	}

	errs := err.Errors()
	if len(errs) != 1 || errs[0].Field() != "unknown" {
		t.Errorf("Errors() = %v, want single unknown-field error", errs)
	}
}

// ===================================================================================================
// Error Translation Tests
// ===================================================================================================

func TestTranslateError_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*watchSettings)
		want   string
	}{
		{
			name:   "required",
			mutate: func(s *watchSettings) { s.Path = "" },
			want:   "Path is required",
		},
		{
			name:   "oneof",
			mutate: func(s *watchSettings) { s.MinSeverity = "extreme" },
			want:   "MinSeverity must be one of: low medium high",
		},
		{
			name:   "gte",
			mutate: func(s *watchSettings) { s.WindowSeconds = -0.5 },
			want:   "WindowSeconds must be greater than or equal to 0",
		},
		{
			name:   "numeric min",
			mutate: func(s *watchSettings) { s.PollInterval = 0 },
			want:   "PollInterval must be at least 1",
		},
		{
			name:   "numeric max",
			mutate: func(s *watchSettings) { s.PollInterval = 70000 },
			want:   "PollInterval must be at most 60000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSettings()
			tt.mutate(&input)

			err := ValidateStruct(&input)
			if err == nil {
				t.Fatal("ValidateStruct() should have returned an error")
			}

			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}
