// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import (
	"sort"
	"time"
	"unicode/utf8"
)

// AlertContentLimit is the number of characters of a line kept in an Alert
const AlertContentLimit = 100

// Category identifies one kind of extracted field
type Category int

const (
	Emails Category = iota
	IPs
	Times
	Dates
	URLs
)

// Categories lists every category in report order
var Categories = []Category{Emails, IPs, Times, Dates, URLs}

// Key returns the stable machine-readable name of the category
func (c Category) Key() string {
	switch c {
	case Emails:
		return "emails"
	case IPs:
		return "ips"
	case Times:
		return "times"
	case Dates:
		return "dates"
	case URLs:
		return "urls"
	}
	return "unknown"
}

// Label returns the human-readable name of the category
func (c Category) Label() string {
	switch c {
	case Emails:
		return "Emails"
	case IPs:
		return "IP addresses"
	case Times:
		return "Times"
	case Dates:
		return "Dates"
	case URLs:
		return "Links"
	}
	return "Unknown"
}

// FindingSet is a deduplicated accumulation of one category across a file.
// Values are compared as exact, case-sensitive strings.
type FindingSet struct {
	values map[string]struct{}
}

// NewFindingSet creates an empty set
func NewFindingSet() *FindingSet {
	return &FindingSet{values: make(map[string]struct{})}
}

// Add inserts every value into the set
func (s *FindingSet) Add(values ...string) {
	for _, v := range values {
		s.values[v] = struct{}{}
	}
}

// Sorted returns the values ordered by plain string comparison.
// IPs, dates and times are therefore ordered lexicographically, not numerically.
func (s *FindingSet) Sorted() []string {
	out := make([]string, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Findings holds the frozen, sorted values of every category
type Findings struct {
	Emails []string `json:"emails" yaml:"emails"`
	IPs    []string `json:"ips" yaml:"ips"`
	Times  []string `json:"times" yaml:"times"`
	Dates  []string `json:"dates" yaml:"dates"`
	URLs   []string `json:"urls" yaml:"urls"`
}

// Freeze converts the five accumulated sets into sorted slices.
// The sets must not be used for accumulation afterwards.
func Freeze(emails, ips, times, dates, urls *FindingSet) Findings {
	return Findings{
		Emails: emails.Sorted(),
		IPs:    ips.Sorted(),
		Times:  times.Sorted(),
		Dates:  dates.Sorted(),
		URLs:   urls.Sorted(),
	}
}

// Get returns the values of one category
func (f Findings) Get(c Category) []string {
	switch c {
	case Emails:
		return f.Emails
	case IPs:
		return f.IPs
	case Times:
		return f.Times
	case Dates:
		return f.Dates
	case URLs:
		return f.URLs
	}
	return nil
}

// Sequences returns the five categories in the fixed order
// emails, ips, times, dates, urls.
func (f Findings) Sequences() (emails, ips, times, dates, urls []string) {
	return f.Emails, f.IPs, f.Times, f.Dates, f.URLs
}

// Counts returns the number of values per category
func (f Findings) Counts() map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = len(f.Get(c))
	}
	return counts
}

// Empty reports whether no category holds a value
func (f Findings) Empty() bool {
	for _, c := range Categories {
		if len(f.Get(c)) > 0 {
			return false
		}
	}
	return true
}

// Alert records one keyword found on one line
type Alert struct {
	Line      int    `json:"line" yaml:"line"`
	Keyword   string `json:"keyword" yaml:"keyword"`
	Content   string `json:"content" yaml:"content"`
	Truncated bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// NewAlert builds an alert, keeping at most AlertContentLimit characters of line
func NewAlert(lineNumber int, keyword, line string) Alert {
	content, truncated := TruncateRunes(line, AlertContentLimit)
	return Alert{
		Line:      lineNumber,
		Keyword:   keyword,
		Content:   content,
		Truncated: truncated,
	}
}

// TruncateRunes cuts s to its first limit characters
func TruncateRunes(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// Report is the write-once summary of one analysis run
type Report struct {
	Source       string    `json:"source" yaml:"source"`
	AnalysedAt   time.Time `json:"analysed_at" yaml:"analysed_at"`
	FileSize     int64     `json:"file_size" yaml:"file_size"`
	Encoding     string    `json:"encoding" yaml:"encoding"`
	LinesScanned int       `json:"lines_scanned" yaml:"lines_scanned"`
	Findings     Findings  `json:"findings" yaml:"findings"`
	Alerts       []Alert   `json:"alerts" yaml:"alerts"`
}
