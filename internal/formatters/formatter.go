// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cyberforge-scan/internal/detector"
)

// DefaultReportFile is where the analysis report is written when no path is given
const DefaultReportFile = "Extraction_Analyse.txt"

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor bool // Whether to disable colored output
}

// Formatter interface defines methods that all report formatters must implement
type Formatter interface {
	// Format renders the report in the formatter's output format
	Format(report *detector.Report, options FormatterOptions) (string, error)

	// Name returns the name of the formatter (e.g., "json", "text")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".json", ".txt")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export renders report with the named formatter
func Export(format string, report *detector.Report, options FormatterOptions) (string, error) {
	formatter, exists := Get(format)
	if !exists {
		return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(List(), ", "))
	}
	if report == nil {
		return "", fmt.Errorf("no report to format")
	}
	return formatter.Format(report, options)
}

// WriteReport renders report and writes it to path, replacing any previous content
func WriteReport(path, format string, report *detector.Report, options FormatterOptions) error {
	content, err := Export(format, report, options)
	if err != nil {
		return err
	}

	cleanPath := filepath.Clean(path)
	if err := os.WriteFile(cleanPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// ReportFileFor returns DefaultReportFile with the extension of format
func ReportFileFor(format string) string {
	formatter, exists := Get(format)
	if !exists {
		return DefaultReportFile
	}
	base := strings.TrimSuffix(DefaultReportFile, filepath.Ext(DefaultReportFile))
	return base + formatter.FileExtension()
}

// FormatInfo describes a registered formatter
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
}

// GetSupportedFormats returns information about all available formatters
func GetSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, name := range List() {
		f, _ := Get(name)
		formats = append(formats, FormatInfo{
			Name:        f.Name(),
			Description: f.Description(),
			Extension:   f.FileExtension(),
		})
	}
	return formats
}
