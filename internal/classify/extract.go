// Vigil - Authentication Log Monitoring and Alerting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vigil

package classify

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	ipRe   = regexp.MustCompile(`\bfrom\s+(\d{1,3}(?:\.\d{1,3}){3})\b`)
	userRe = regexp.MustCompile(`\bfor\s+(?:invalid user\s+)?([A-Za-z0-9._-]+)\b`)
)

// extractIP returns the normalized source IP from the first
// "from <dotted-quad>" token in the line, or nil if there is none or the
// candidate is not a valid IPv4 address.
func extractIP(line string) *string {
	m := ipRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return normalizeIP(m[1])
}

// normalizeIP validates a dotted-quad candidate and normalizes it:
// every octet must parse as an integer in [0,255]; leading zeros are
// dropped in the output. Invalid input yields nil, never a partially
// normalized value.
func normalizeIP(ip string) *string {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return nil
	}

	octets := make([]string, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 255 {
			return nil
		}
		octets[i] = strconv.Itoa(n)
	}

	normalized := strings.Join(octets, ".")
	return &normalized
}

// extractUser returns the user name from the first
// "for [invalid user ]<token>" occurrence, with the qualifier stripped,
// or nil if the line carries none.
func extractUser(line string) *string {
	m := userRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	user := m[1]
	return &user
}

// inferService guesses the originating service from the line text:
// "sshd" wins over "sudo", both case-insensitive substring checks.
// Returns nil when neither appears.
func inferService(line string) *string {
	s := strings.ToLower(line)
	if strings.Contains(s, "sshd") {
		service := "sshd"
		return &service
	}
	if strings.Contains(s, "sudo") {
		service := "sudo"
		return &service
	}
	return nil
}
