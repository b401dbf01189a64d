// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/extract"
	"cyberforge-scan/internal/formatters"
	"cyberforge-scan/internal/observability"
	"cyberforge-scan/internal/textdecode"

	// Report formats selectable through ScanConfig.Format
	_ "cyberforge-scan/internal/formatters/json"
	_ "cyberforge-scan/internal/formatters/text"
	_ "cyberforge-scan/internal/formatters/yaml"
)

// DefaultExtensions are the file extensions scanned without a warning
var DefaultExtensions = []string{".txt", ".log", ".conf", ".cfg"}

// ScanConfig holds configuration for one analysis run.
type ScanConfig struct {
	FilePath string
	// Keywords raising alerts. nil selects detector.DefaultKeywords,
	// an empty non-nil slice disables alerting.
	Keywords []string
	// Extensions accepted without warning. nil selects DefaultExtensions.
	Extensions []string
	// OutputFile receives the rendered report. Empty skips the report.
	OutputFile   string
	Format       string
	MaxLineBytes int
	// Encodings tried in order. nil selects textdecode.DefaultCandidates.
	Encodings []textdecode.Decoder
	Now       func() time.Time
	Observer  *observability.StandardObserver
	Hooks     ScanHooks
}

// ScanHooks lets the presentation layer follow a run
type ScanHooks struct {
	// OnWarning receives non-fatal problems such as an unknown extension
	OnWarning func(*ScanError)
	// OnAlert receives every alert, in order, once the file decoded completely
	OnAlert func(detector.Alert)
}

// ScanResult holds the results of a scanning operation.
type ScanResult struct {
	Report     *detector.Report
	Warnings   []*ScanError
	ReportPath string
	// ReportErr is set when the report could not be written; Report is still valid
	ReportErr *ScanError
}

// accumulator owns the finding sets and alert log while a file is read
type accumulator struct {
	emails *detector.FindingSet
	ips    *detector.FindingSet
	times  *detector.FindingSet
	dates  *detector.FindingSet
	urls   *detector.FindingSet
	alerts []detector.Alert
	lines  int
}

func newAccumulator() *accumulator {
	return &accumulator{
		emails: detector.NewFindingSet(),
		ips:    detector.NewFindingSet(),
		times:  detector.NewFindingSet(),
		dates:  detector.NewFindingSet(),
		urls:   detector.NewFindingSet(),
	}
}

func (a *accumulator) add(r extract.LineResult) {
	a.emails.Add(r.Emails...)
	a.ips.Add(extract.FilterIPv4(r.IPs)...)
	a.times.Add(r.Times...)
	a.dates.Add(r.Dates...)
	a.urls.Add(r.URLs...)
}

// ScanFile reads one file and returns its findings, alerts and report.
// Fatal failures return a *ScanError and no partial results.
func ScanFile(cfg ScanConfig) (*ScanResult, error) {
	observer := cfg.Observer
	if observer == nil {
		observer = observability.NewNopObserver()
	}
	debug := observer.Debug()
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	finishTiming := observer.StartTiming("ingest", "scan_file", cfg.FilePath)
	var finishStep func(bool, string)
	if debug != nil {
		finishStep = debug.StartStep("ingest", "scan_file", cfg.FilePath)
	}
	fail := func(err error) (*ScanResult, error) {
		scanErr := ClassifyError(err, cfg.FilePath)
		finishTiming(false, map[string]interface{}{"error": scanErr.Error(), "kind": scanErr.Kind.String()})
		if finishStep != nil {
			finishStep(false, scanErr.Error())
		}
		return nil, scanErr
	}

	info, err := os.Stat(cfg.FilePath)
	if err != nil {
		return fail(err)
	}
	if info.IsDir() {
		return fail(fmt.Errorf("%s is a directory", cfg.FilePath))
	}

	format := cfg.Format
	if format == "" {
		format = "text"
	}
	if _, ok := formatters.Get(format); !ok {
		return fail(&ScanError{
			Kind: KindUnexpected,
			Path: cfg.FilePath,
			Err:  fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(formatters.List(), ", ")),
		})
	}

	result := &ScanResult{}
	extensions := cfg.Extensions
	if extensions == nil {
		extensions = DefaultExtensions
	}
	if !hasExtension(cfg.FilePath, extensions) {
		warning := &ScanError{
			Kind: KindUnsupportedExtension,
			Path: cfg.FilePath,
			Err:  fmt.Errorf("recommended formats: %s", strings.Join(extensions, " ")),
		}
		result.Warnings = append(result.Warnings, warning)
		if cfg.Hooks.OnWarning != nil {
			cfg.Hooks.OnWarning(warning)
		}
	}

	extractor := extract.NewExtractor()
	matcher := detector.NewKeywordMatcher(cfg.Keywords)
	candidates := cfg.Encodings
	if candidates == nil {
		candidates = textdecode.DefaultCandidates()
	}

	var acc *accumulator
	decoder, err := textdecode.Attempt(candidates, func(d textdecode.Decoder) error {
		finishDecode := observer.StartTiming("ingest", "decode", cfg.FilePath)
		if debug != nil {
			debug.LogDetail("ingest", "trying encoding "+d.Name())
		}
		a, err := ingest(cfg.FilePath, d, extractor, matcher, cfg.MaxLineBytes)
		if err != nil {
			finishDecode(false, map[string]interface{}{"encoding": d.Name(), "error": err.Error()})
			return err
		}
		finishDecode(true, map[string]interface{}{"encoding": d.Name(), "lines": a.lines})
		acc = a
		return nil
	})
	if err != nil {
		return fail(err)
	}

	report := &detector.Report{
		Source:       cfg.FilePath,
		AnalysedAt:   now(),
		FileSize:     info.Size(),
		Encoding:     decoder.Name(),
		LinesScanned: acc.lines,
		Findings:     detector.Freeze(acc.emails, acc.ips, acc.times, acc.dates, acc.urls),
		Alerts:       acc.alerts,
	}
	if report.Alerts == nil {
		report.Alerts = []detector.Alert{}
	}
	result.Report = report

	if cfg.Hooks.OnAlert != nil {
		for _, alert := range report.Alerts {
			cfg.Hooks.OnAlert(alert)
		}
	}

	if debug != nil {
		debug.LogMetric("ingest", "keywords", len(matcher.Keywords()))
		debug.LogMetric("ingest", "encoding", report.Encoding)
		debug.LogMetric("ingest", "lines", report.LinesScanned)
		for _, c := range detector.Categories {
			debug.LogMetric("ingest", c.Key(), len(report.Findings.Get(c)))
		}
		debug.LogMetric("ingest", "alerts", len(report.Alerts))
	}

	if cfg.OutputFile != "" {
		finishWrite := observer.StartTiming("report", "write_report", cfg.OutputFile)
		opts := formatters.FormatterOptions{NoColor: true}
		if err := formatters.WriteReport(cfg.OutputFile, format, report, opts); err != nil {
			result.ReportErr = &ScanError{Kind: KindWriteFailure, Path: cfg.OutputFile, Err: err}
			finishWrite(false, map[string]interface{}{"error": err.Error()})
		} else {
			result.ReportPath = cfg.OutputFile
			finishWrite(true, nil)
		}
	}

	finishTiming(true, map[string]interface{}{
		"encoding": report.Encoding,
		"lines":    report.LinesScanned,
		"alerts":   len(report.Alerts),
	})
	if finishStep != nil {
		finishStep(true, fmt.Sprintf("%d lines, %d alerts", report.LinesScanned, len(report.Alerts)))
	}

	return result, nil
}

// ingest runs the per-line loop for one candidate encoding.
// The returned accumulator is only meaningful when err is nil.
func ingest(path string, decoder textdecode.Decoder, extractor *extract.Extractor, matcher *detector.KeywordMatcher, maxLineBytes int) (*accumulator, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	acc := newAccumulator()
	scanner := textdecode.NewLineScanner(file, maxLineBytes)
	for scanner.Scan() {
		acc.lines++

		line, err := decoder.Decode(scanner.Bytes())
		if err != nil {
			return nil, &textdecode.DecodeError{Line: acc.lines, Err: err}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if fields := extractor.ExtractLine(line); !fields.Empty() {
			acc.add(fields)
		}
		acc.alerts = append(acc.alerts, matcher.Match(acc.lines, line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading line %d: %w", acc.lines+1, err)
	}

	return acc, nil
}

// hasExtension reports whether path ends with one of extensions, ignoring case
func hasExtension(path string, extensions []string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
