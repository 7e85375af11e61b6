// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package rules

import (
	"strings"
	"testing"
)

func TestDefault_CanonicalRules(t *testing.T) {
	t.Parallel()

	set, err := Default(false)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	rules := set.Rules()
	if len(rules) != 3 {
		t.Fatalf("len(rules) = %d, want 3", len(rules))
	}

	want := []struct {
		name     string
		severity Severity
	}{
		{"failed_password", SeverityHigh},
		{"accepted_password", SeverityLow},
		{"sudo", SeverityMedium},
	}

	for i, w := range want {
		if rules[i].Name != w.name {
			t.Errorf("rules[%d].Name = %q, want %q", i, rules[i].Name, w.name)
		}
		if rules[i].Severity != w.severity {
			t.Errorf("rules[%d].Severity = %q, want %q", i, rules[i].Severity, w.severity)
		}
	}
}

func TestRule_Matches(t *testing.T) {
	t.Parallel()

	set, err := Default(false)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	byName := make(map[string]Rule)
	for _, r := range set.Rules() {
		byName[r.Name] = r
	}

	tests := []struct {
		rule string
		line string
		want bool
	}{
		{"failed_password", "Jan 10 sshd[1]: Failed password for root from 1.2.3.4 port 22", true},
		{"failed_password", "Jan 10 sshd[1]: Accepted password for alice", false},
		{"failed_password", "failed password for root", false}, // case-sensitive by default
		{"accepted_password", "Jan 10 sshd[1]: Accepted password for alice from 10.0.0.5", true},
		{"accepted_password", "nothing to see here", false},
		{"sudo", "host1 sudo: alice : TTY=pts/0 ; COMMAND=/bin/ls", true},
		{"sudo", "Jan 10 host sudo: root ran something", true},
		{"sudo", "pseudo: not a match", false},
	}

	for _, tt := range tests {
		rule, ok := byName[tt.rule]
		if !ok {
			t.Fatalf("rule %q not found", tt.rule)
		}
		if got := rule.Matches(tt.line); got != tt.want {
			t.Errorf("%s.Matches(%q) = %v, want %v", tt.rule, tt.line, got, tt.want)
		}
	}
}

func TestBuild_CaseInsensitive(t *testing.T) {
	t.Parallel()

	set, err := Default(true)
	if err != nil {
		t.Fatalf("Default(true) error = %v", err)
	}
	if !set.CaseInsensitive() {
		t.Error("CaseInsensitive() = false, want true")
	}

	failed := set.Rules()[0]
	if !failed.Matches("jan 10 sshd[1]: failed password for root") {
		t.Error("case-insensitive set should match lowercased line")
	}
}

func TestBuild_ExtraRules(t *testing.T) {
	t.Parallel()

	extra := []Spec{
		{Name: "session_opened", Pattern: `session opened`, Severity: "low"},
	}

	set, err := Build(extra, false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if set.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", set.Len())
	}

	last := set.Rules()[3]
	if last.Name != "session_opened" {
		t.Errorf("last rule = %q, want session_opened", last.Name)
	}
	if !last.Matches("pam_unix(sshd:session): session opened for user alice") {
		t.Error("extra rule should match its pattern")
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		extra   []Spec
		wantErr string
	}{
		{
			name:    "invalid pattern",
			extra:   []Spec{{Name: "broken", Pattern: `([unclosed`, Severity: "low"}},
			wantErr: "invalid pattern",
		},
		{
			name:    "invalid severity",
			extra:   []Spec{{Name: "odd", Pattern: `x`, Severity: "urgent"}},
			wantErr: "invalid severity",
		},
		{
			name:    "duplicate name",
			extra:   []Spec{{Name: "sudo", Pattern: `x`, Severity: "low"}},
			wantErr: "duplicate name",
		},
		{
			name:    "empty name",
			extra:   []Spec{{Name: "", Pattern: `x`, Severity: "low"}},
			wantErr: "empty name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Build(tt.extra, false)
			if err == nil {
				t.Fatal("Build() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}
