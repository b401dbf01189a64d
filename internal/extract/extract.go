// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract pulls structured fields out of a single line of text.
package extract

import (
	"regexp"

	"cyberforge-scan/internal/detector"
)

// fieldPattern couples a category with its compiled grammar
type fieldPattern struct {
	category    detector.Category
	regex       *regexp.Regexp
	description string
}

// The time and date grammars accept values such as hour 29 or month 13.
// Extraction is best effort and does not validate the calendar.
const (
	emailPattern = `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`
	ipv4Pattern  = `\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`
	timePattern  = `\b[0-2]?[0-9]:[0-5][0-9](?::[0-5][0-9])?(?:\s?(?i:AM|PM))?\b`
	datePattern  = `\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`
	urlPattern   = `https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b(?:[-a-zA-Z0-9()@:%_+.~#?&/=]*)`
)

// LineResult holds the raw matches of one line, in order of appearance.
// Duplicates inside a line are kept; deduplication happens across the file.
type LineResult struct {
	Emails []string
	IPs    []string
	Times  []string
	Dates  []string
	URLs   []string
}

// Empty reports whether the line produced no match at all
func (r LineResult) Empty() bool {
	return len(r.Emails) == 0 && len(r.IPs) == 0 && len(r.Times) == 0 &&
		len(r.Dates) == 0 && len(r.URLs) == 0
}

// Extractor runs the five field grammars over lines of text
type Extractor struct {
	patterns []fieldPattern
}

// NewExtractor compiles the field grammars once
func NewExtractor() *Extractor {
	return &Extractor{
		patterns: []fieldPattern{
			{
				category:    detector.Emails,
				regex:       regexp.MustCompile(emailPattern),
				description: "local@domain.tld email address",
			},
			{
				category:    detector.IPs,
				regex:       regexp.MustCompile(ipv4Pattern),
				description: "Dotted-quad IPv4 candidate",
			},
			{
				category:    detector.Times,
				regex:       regexp.MustCompile(timePattern),
				description: "H:MM or H:MM:SS with optional AM/PM",
			},
			{
				category:    detector.Dates,
				regex:       regexp.MustCompile(datePattern),
				description: "D/M/Y or Y-M-D date",
			},
			{
				category:    detector.URLs,
				regex:       regexp.MustCompile(urlPattern),
				description: "http or https link",
			},
		},
	}
}

// ExtractLine runs every grammar on line independently.
// IPv4 values are syntactic candidates; see ValidIPv4.
func (e *Extractor) ExtractLine(line string) LineResult {
	return LineResult{
		Emails: e.Find(detector.Emails, line),
		IPs:    e.Find(detector.IPs, line),
		Times:  e.Find(detector.Times, line),
		Dates:  e.Find(detector.Dates, line),
		URLs:   e.Find(detector.URLs, line),
	}
}

// Find returns the matches of a single category in line
func (e *Extractor) Find(c detector.Category, line string) []string {
	for _, p := range e.patterns {
		if p.category == c {
			return p.regex.FindAllString(line, -1)
		}
	}
	return nil
}

// Describe returns a short description of the grammar used for c
func (e *Extractor) Describe(c detector.Category) string {
	for _, p := range e.patterns {
		if p.category == c {
			return p.description
		}
	}
	return ""
}

// Pattern returns the regular expression source used for c
func (e *Extractor) Pattern(c detector.Category) string {
	for _, p := range e.patterns {
		if p.category == c {
			return p.regex.String()
		}
	}
	return ""
}
