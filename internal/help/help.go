// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"cyberforge-scan/internal/formatters"

	"github.com/fatih/color"
)

// FieldInfo describes one extracted field for the help screens
type FieldInfo struct {
	Key         string   // Stable key (e.g., "emails")
	Label       string   // Display label (e.g., "Emails")
	Description string   // Short description of what is matched
	Pattern     string   // Regular expression used for extraction
	Notes       []string // Caveats shown in the detailed view
	Examples    []string // Sample values
}

// System manages help content for the application
type System struct {
	out     io.Writer
	fields  map[string]FieldInfo
	formats []formatters.FormatInfo
	colors  map[string]*color.Color
}

// NewSystem creates a help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	h := &System{
		out:    out,
		fields: make(map[string]FieldInfo),
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"negative": color.New(color.FgRed),
			"example":  color.New(color.FgMagenta),
		},
	}
	if noColor {
		for _, c := range h.colors {
			c.DisableColor()
		}
	}
	return h
}

// RegisterField adds a field to the help system
func (h *System) RegisterField(info FieldInfo) {
	h.fields[strings.ToLower(info.Key)] = info
}

// SetFormats sets the report formats listed by the general help
func (h *System) SetFormats(formats []formatters.FormatInfo) {
	h.formats = formats
}

// ShowGeneralHelp displays usage, options and examples
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Fprintln(h.out, "CyberForge Scan - Log Analysis Tool")
	fmt.Fprintln(h.out, "===================================")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "USAGE:")
	fmt.Fprintln(h.out, "  cyberforge-scan --file <path-to-log> [options]")
	fmt.Fprintln(h.out, "  cyberforge-scan                      # prompts for the path on a terminal")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tPath to the log or text file to analyse")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles and exit")
	fmt.Fprintln(w, "  --keywords\t<list>\tComma-separated alert keywords, replacing the built-in list")
	fmt.Fprintln(w, "  --output\t<path>\tReport file, overwritten on each run (default: Extraction_Analyse.txt)")
	fmt.Fprintf(w, "  --format\t<format>\tReport format: %s (default: text)\n", strings.Join(h.formatNames(), ", "))
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --quiet\t\tOnly print errors and the report path")
	fmt.Fprintln(w, "  --debug\t\tPrint ingestion steps and JSON timings to stderr")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help fields\t\tList the extracted fields")
	fmt.Fprintln(w, "  --help keywords\t\tList the built-in alert keywords")
	fmt.Fprintln(w, "  --help <field>\t\tShow detailed help for a field")
	w.Flush()

	if len(h.formats) > 0 {
		fmt.Fprintln(h.out)
		h.colors["header"].Fprintln(h.out, "REPORT FORMATS:")
		w = tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
		for _, f := range h.formats {
			fmt.Fprintf(w, "  %s\t%s\t%s\n", f.Name, f.Extension, f.Description)
		}
		w.Flush()
	}

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	h.colors["example"].Fprintln(h.out, "  cyberforge-scan --file /var/log/auth.log")
	h.colors["example"].Fprintln(h.out, "  cyberforge-scan --file app.log --keywords password,token --output auth-report.txt")
	h.colors["example"].Fprintln(h.out, "  cyberforge-scan --file app.log --format json --profile ci")

	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Project config: cyberforge.yaml, cyberforge.yml or .cyberforge.yaml (current directory)")
	fmt.Fprintln(h.out, "  User config:    <user config dir>/cyberforge-scan/config.yaml")
	fmt.Fprintln(h.out, "  Environment:    CYBERFORGE_CONFIG_DIR overrides the user config directory")
	fmt.Fprintln(h.out, "                  CYBERFORGE_DEBUG enables debug output, NO_COLOR disables colors")
}

// ShowFieldsHelp lists every registered field
func (h *System) ShowFieldsHelp() {
	h.colors["title"].Fprintln(h.out, "Extracted Fields")
	fmt.Fprintln(h.out, "================")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  FIELD\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")
	for _, key := range h.fieldKeys() {
		info := h.fields[key]
		fmt.Fprintf(w, "  %s\t%s\n", info.Key, info.Description)
	}
	w.Flush()

	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "For detailed information about a specific field, use:")
	h.colors["example"].Fprintln(h.out, "  cyberforge-scan --help <field>")
}

// ShowFieldHelp displays detailed help for one field. It returns false when
// the field is unknown.
func (h *System) ShowFieldHelp(key string) bool {
	info, exists := h.fields[strings.ToLower(key)]
	if !exists {
		h.colors["negative"].Fprintf(h.out, "Error: field '%s' not found.\n", key)
		fmt.Fprintln(h.out, "Use 'cyberforge-scan --help fields' to see the available fields.")
		return false
	}

	h.colors["title"].Fprintln(h.out, info.Label)
	fmt.Fprintln(h.out, strings.Repeat("=", len(info.Label)))
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, info.Description)
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "PATTERN:")
	fmt.Fprintf(h.out, "  %s\n", info.Pattern)

	if len(info.Notes) > 0 {
		fmt.Fprintln(h.out)
		h.colors["header"].Fprintln(h.out, "NOTES:")
		for _, note := range info.Notes {
			fmt.Fprintf(h.out, "  - %s\n", note)
		}
	}

	if len(info.Examples) > 0 {
		fmt.Fprintln(h.out)
		h.colors["header"].Fprintln(h.out, "EXAMPLES:")
		for _, example := range info.Examples {
			h.colors["example"].Fprintf(h.out, "  %s\n", example)
		}
	}
	return true
}

// ShowKeywordsHelp lists the alert keywords, several per row
func (h *System) ShowKeywordsHelp(keywords []string) {
	h.colors["title"].Fprintln(h.out, "Alert Keywords")
	fmt.Fprintln(h.out, "==============")
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, "A line raises one alert per keyword it contains (case-insensitive substring match).")
	fmt.Fprintln(h.out)

	const perRow = 6
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for i := 0; i < len(keywords); i += perRow {
		row := keywords[i:min(i+perRow, len(keywords))]
		fmt.Fprintf(w, "  %s\n", strings.Join(row, "\t"))
	}
	w.Flush()
}

func (h *System) formatNames() []string {
	names := make([]string, 0, len(h.formats))
	for _, f := range h.formats {
		names = append(names, f.Name)
	}
	return names
}

func (h *System) fieldKeys() []string {
	keys := make([]string, 0, len(h.fields))
	for key := range h.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
