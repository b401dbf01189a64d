// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/formatters"
	"cyberforge-scan/internal/formatters/shared"

	"github.com/fatih/color"
)

const (
	reportTitle = "CYBER FORGE SCAN - LOG ANALYSIS REPORT"
	ruleWidth   = 80
)

// section describes one findings block of the report
type section struct {
	category    detector.Category
	heading     string
	placeholder string
}

var sections = []section{
	{detector.Emails, "EMAILS FOUND", "No email found."},
	{detector.IPs, "IP ADDRESSES FOUND", "No IP address found."},
	{detector.Times, "TIMES FOUND", "No time found."},
	{detector.Dates, "DATES FOUND", "No date found."},
	{detector.URLs, "LINKS FOUND", "No link found."},
}

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Plain text report with one numbered section per field"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report *detector.Report, options formatters.FormatterOptions) (string, error) {
	if report == nil {
		return "", fmt.Errorf("no report to format")
	}

	var builder strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	builder.WriteString(heavy + "\n")
	builder.WriteString(f.paint("white", reportTitle, options) + "\n")
	builder.WriteString(heavy + "\n\n")

	f.appendMetadata(&builder, report)
	builder.WriteString("\n" + light + "\n\n")

	for _, s := range sections {
		f.appendSection(&builder, s, report.Findings.Get(s.category), options)
	}

	f.appendAlerts(&builder, report.Alerts, options)

	builder.WriteString("\n" + heavy + "\n")
	builder.WriteString("END OF REPORT\n")
	builder.WriteString(heavy + "\n")

	return builder.String(), nil
}

func (f *Formatter) appendMetadata(builder *strings.Builder, report *detector.Report) {
	fmt.Fprintf(builder, "Analysed file: %s\n", report.Source)
	fmt.Fprintf(builder, "Analysis date: %s\n", report.AnalysedAt.Format(shared.TimestampLayout))
	fmt.Fprintf(builder, "File size: %d bytes\n", report.FileSize)
	if report.Encoding != "" {
		fmt.Fprintf(builder, "Encoding: %s\n", report.Encoding)
	}
	fmt.Fprintf(builder, "Lines scanned: %d\n", report.LinesScanned)
}

func (f *Formatter) appendSection(builder *strings.Builder, s section, values []string, options formatters.FormatterOptions) {
	heading := fmt.Sprintf("%s (%d):", s.heading, len(values))
	builder.WriteString(f.paint("cyan", heading, options) + "\n")
	builder.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	if len(values) == 0 {
		builder.WriteString(f.paint("yellow", s.placeholder, options) + "\n")
	}
	for i, value := range values {
		fmt.Fprintf(builder, "%3d. %s\n", i+1, value)
	}
	builder.WriteString("\n")
}

func (f *Formatter) appendAlerts(builder *strings.Builder, alerts []detector.Alert, options formatters.FormatterOptions) {
	heading := fmt.Sprintf("SECURITY ALERTS (%d):", len(alerts))
	builder.WriteString(f.paint("red", heading, options) + "\n")
	builder.WriteString(strings.Repeat("-", ruleWidth) + "\n")

	if len(alerts) == 0 {
		builder.WriteString(f.paint("green", "No alert detected.", options) + "\n")
		return
	}
	for i, alert := range alerts {
		fmt.Fprintf(builder, "\n%d. Line %d - Keyword: %s\n", i+1, alert.Line, alert.Keyword)
		fmt.Fprintf(builder, "   Content: %s\n", alert.Content)
	}
}

// paint colours s unless colours are disabled for this render
func (f *Formatter) paint(name, s string, options formatters.FormatterOptions) string {
	c, ok := f.colors[name]
	if options.NoColor || !ok {
		return s
	}
	return c.Sprint(s)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
