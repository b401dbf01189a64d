// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "strings"

// DefaultKeywords are the sensitive words matched when no list is configured.
// Matching is a case-insensitive substring test, so "fail" also fires on "failed".
var DefaultKeywords = []string{
	"error", "permission", "admin", "root", "hack",
	"access", "denied", "granted", "fail", "failed",
	"warning", "critical", "alert", "breach", "attack",
	"unauthorized", "forbidden", "exception", "api_key",
	"crypt", "token", "auth", "credential", "secret", "ip",
	"password", "motdepasse", "select", "instert", "waen", "fatal",
	"panic", "timeout", "refused", "invalid", "500", "502", "503", "404", "oom",
	"segfault", "login", "killed", "brute force", "sql", "401",
}

// DefaultKeywordList returns a copy of DefaultKeywords
func DefaultKeywordList() []string {
	out := make([]string, len(DefaultKeywords))
	copy(out, DefaultKeywords)
	return out
}

// CompactKeywords drops empty entries. Every other keyword is kept exactly
// as configured, spacing and repeats included.
func CompactKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

// ParseKeywordList splits a comma-separated keyword list such as the
// --keywords flag value. Entries are trimmed; empty ones are dropped.
func ParseKeywordList(list string) []string {
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return CompactKeywords(parts)
}

// KeywordMatcher tests lines against a fixed keyword list
type KeywordMatcher struct {
	keywords []string
	lowered  []string
}

// NewKeywordMatcher creates a matcher; a nil list selects DefaultKeywords.
// Repeated keywords each raise their own alert.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	if keywords == nil {
		keywords = DefaultKeywords
	}
	keywords = CompactKeywords(keywords)
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordMatcher{keywords: keywords, lowered: lowered}
}

// Keywords returns the effective keyword list
func (m *KeywordMatcher) Keywords() []string {
	return m.keywords
}

// Match returns one alert per keyword contained in line, in keyword order.
// A keyword occurring several times on the line still yields one alert.
func (m *KeywordMatcher) Match(lineNumber int, line string) []Alert {
	lower := strings.ToLower(line)
	var alerts []Alert
	for i, k := range m.lowered {
		if strings.Contains(lower, k) {
			alerts = append(alerts, NewAlert(lineNumber, m.keywords[i], line))
		}
	}
	return alerts
}
