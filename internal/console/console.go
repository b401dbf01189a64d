// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package console prints scan progress and results for a human reader.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cyberforge-scan/internal/core"
	"cyberforge-scan/internal/detector"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const ruleWidth = 70

// Options controls console output
type Options struct {
	NoColor bool // Disable colored output
	Quiet   bool // Only print errors and the report location
}

// Console writes human-readable scan output
type Console struct {
	out    io.Writer
	errOut io.Writer
	quiet  bool
	colors map[string]*color.Color
}

// New creates a console writing normal output to out and errors to errOut
func New(out, errOut io.Writer, options Options) *Console {
	c := &Console{
		out:    out,
		errOut: errOut,
		quiet:  options.Quiet,
		colors: map[string]*color.Color{
			"banner":  color.New(color.FgGreen, color.Bold),
			"green":   color.New(color.FgGreen),
			"yellow":  color.New(color.FgYellow),
			"red":     color.New(color.FgRed),
			"cyan":    color.New(color.FgCyan),
			"heading": color.New(color.FgGreen, color.Bold),
			"bold":    color.New(color.Bold),
		},
	}
	if options.NoColor {
		for _, col := range c.colors {
			col.DisableColor()
		}
	}
	return c
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ColorDisabled decides whether output to f must be plain: the --no-color
// flag, a non-terminal stream, NO_COLOR or CI all turn colors off
func ColorDisabled(noColorFlag bool, f *os.File) bool {
	if noColorFlag {
		return true
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return true
	}
	return !IsTerminal(f)
}

// Banner prints the tool banner
func (c *Console) Banner() {
	if c.quiet {
		return
	}
	line := strings.Repeat("═", 58)
	c.colors["banner"].Fprintf(c.out, "╔%s╗\n", line)
	c.colors["banner"].Fprintf(c.out, "║%s║\n", center("CYBER FORGE SCAN - Log File Analyser", 58))
	c.colors["banner"].Fprintf(c.out, "╚%s╝\n\n", line)
}

// StartScan announces the file being analysed
func (c *Console) StartScan(path string) {
	if c.quiet {
		return
	}
	c.colors["green"].Fprintf(c.out, "CyberForgeScan - analysing file: %s\n", path)
	c.colors["cyan"].Fprintln(c.out, strings.Repeat("─", ruleWidth))
	fmt.Fprintln(c.out)
}

// Warning prints a non-fatal scan warning
func (c *Console) Warning(w *core.ScanError, extensions []string) {
	if c.quiet || w == nil {
		return
	}
	switch w.Kind {
	case core.KindUnsupportedExtension:
		c.colors["yellow"].Fprintf(c.out, "⚠ Warning: non-standard extension. Recommended formats: %s\n",
			strings.Join(extensions, ", "))
	default:
		c.colors["yellow"].Fprintf(c.out, "⚠ Warning: %v\n", w)
	}
}

// Error prints err with a message chosen by its kind
func (c *Console) Error(err error) {
	if err == nil {
		return
	}
	path := ""
	var scanErr *core.ScanError
	if errors.As(err, &scanErr) {
		path = scanErr.Path
	}

	var msg string
	switch core.KindOf(err) {
	case core.KindPathNotFound:
		msg = fmt.Sprintf("✗ Error: file not found: %s", path)
	case core.KindPermissionDenied:
		msg = fmt.Sprintf("✗ Error: permission denied reading: %s", path)
	case core.KindUnreadableEncoding:
		msg = fmt.Sprintf("✗ Error: no supported encoding could decode: %s", path)
	case core.KindWriteFailure:
		msg = fmt.Sprintf("✗ Error while saving the report: %v", unwrapScanError(err))
	default:
		msg = fmt.Sprintf("✗ Unexpected error: %v", unwrapScanError(err))
	}
	c.colors["red"].Fprintln(c.errOut, msg)
}

// Alert prints one alert as it is raised. The content is already cut to
// detector.AlertContentLimit characters; "..." marks a longer line.
func (c *Console) Alert(a detector.Alert) {
	if c.quiet {
		return
	}
	suffix := ""
	if a.Truncated {
		suffix = "..."
	}
	c.colors["red"].Fprintf(c.out, "🚨 ALERT - Line %d\n", a.Line)
	c.colors["yellow"].Fprintf(c.out, "   Keyword: %s\n", a.Keyword)
	c.colors["cyan"].Fprintf(c.out, "   Content: %s%s\n", a.Content, suffix)
	c.colors["cyan"].Fprintf(c.out, "   %s\n\n", strings.Repeat("─", ruleWidth))
}

// Statistics prints the end-of-run counts and where the report went.
// reportPath is empty when no report was written.
func (c *Console) Statistics(report *detector.Report, reportPath string) {
	if report == nil {
		return
	}
	if !c.quiet {
		counts := report.Findings.Counts()
		c.colors["green"].Fprintln(c.out, "\n✅ Analysis complete!")
		c.colors["cyan"].Fprintln(c.out, strings.Repeat("═", ruleWidth))
		c.colors["bold"].Fprintln(c.out, "📊 STATISTICS:")
		fmt.Fprintf(c.out, "   • Lines scanned: %d\n", report.LinesScanned)
		fmt.Fprintf(c.out, "   • Emails found: %d\n", counts[detector.Emails])
		fmt.Fprintf(c.out, "   • IPs found: %d\n", counts[detector.IPs])
		fmt.Fprintf(c.out, "   • Times found: %d\n", counts[detector.Times])
		fmt.Fprintf(c.out, "   • Dates found: %d\n", counts[detector.Dates])
		fmt.Fprintf(c.out, "   • Links found: %d\n", counts[detector.URLs])
		fmt.Fprintf(c.out, "   • Alerts: %d\n", len(report.Alerts))
		c.colors["cyan"].Fprintln(c.out, strings.Repeat("═", ruleWidth))
		fmt.Fprintln(c.out)
	}
	if reportPath != "" {
		c.colors["green"].Fprintf(c.out, "💾 Results saved to: %s\n", reportPath)
	}
}

var placeholders = map[detector.Category]string{
	detector.Emails: "No email found",
	detector.IPs:    "No IP address found",
	detector.Times:  "No time found",
	detector.Dates:  "No date found",
	detector.URLs:   "No link found",
}

// Results prints every finding, numbered per category, then the final summary
func (c *Console) Results(report *detector.Report) {
	if c.quiet || report == nil {
		return
	}

	rule := strings.Repeat("=", ruleWidth)
	c.colors["heading"].Fprintf(c.out, "\n%s\n", rule)
	if report.Source != "" {
		c.colors["heading"].Fprintf(c.out, "ANALYSIS RESULTS - %s\n", report.Source)
	} else {
		c.colors["heading"].Fprintln(c.out, "ANALYSIS RESULTS")
	}
	c.colors["heading"].Fprintf(c.out, "%s\n\n", rule)

	if report.Findings.Empty() {
		c.colors["yellow"].Fprintln(c.out, "⚠ No data extracted from the file")
		fmt.Fprintln(c.out)
	}

	for _, category := range detector.Categories {
		values := report.Findings.Get(category)
		if len(values) == 0 {
			c.colors["yellow"].Fprintln(c.out, placeholders[category])
			fmt.Fprintln(c.out)
			continue
		}
		c.colors["green"].Fprintf(c.out, "%s found (%d):\n", category.Label(), len(values))
		for i, v := range values {
			fmt.Fprintf(c.out, "   %2d. %s\n", i+1, v)
		}
		fmt.Fprintln(c.out)
	}

	c.Summary(report)
}

// Summary prints the closing per-category counts
func (c *Console) Summary(report *detector.Report) {
	if c.quiet || report == nil {
		return
	}
	counts := report.Findings.Counts()
	rule := strings.Repeat("=", ruleWidth)
	c.colors["heading"].Fprintln(c.out, rule)
	c.colors["heading"].Fprintln(c.out, "FINAL SUMMARY:")
	for _, category := range detector.Categories {
		fmt.Fprintf(c.out, "  • %s found: %d\n", category.Label(), counts[category])
	}
	fmt.Fprintf(c.out, "  • Alerts raised: %d\n", len(report.Alerts))
	c.colors["heading"].Fprintf(c.out, "%s\n\n", rule)
}

// center pads s with spaces to width characters
func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// unwrapScanError strips the ScanError prefix so messages do not repeat the path
func unwrapScanError(err error) error {
	var scanErr *core.ScanError
	if errors.As(err, &scanErr) && scanErr.Err != nil {
		return scanErr.Err
	}
	return err
}
