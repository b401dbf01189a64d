// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/version"
)

// TimestampLayout is used for every timestamp printed in a report
const TimestampLayout = "2006-01-02 15:04:05"

// ReportDocument is the top-level structure for JSON/YAML output
type ReportDocument struct {
	Tool         string            `json:"tool" yaml:"tool"`
	Version      string            `json:"version" yaml:"version"`
	Source       string            `json:"source" yaml:"source"`
	AnalysedAt   string            `json:"analysed_at" yaml:"analysed_at"`
	FileSize     int64             `json:"file_size" yaml:"file_size"`
	Encoding     string            `json:"encoding" yaml:"encoding"`
	LinesScanned int               `json:"lines_scanned" yaml:"lines_scanned"`
	Summary      Summary           `json:"summary" yaml:"summary"`
	Findings     detector.Findings `json:"findings" yaml:"findings"`
	Alerts       []detector.Alert  `json:"alerts" yaml:"alerts"`
}

// Summary holds the counts shown in the statistics block
type Summary struct {
	Emails int `json:"emails" yaml:"emails"`
	IPs    int `json:"ips" yaml:"ips"`
	Times  int `json:"times" yaml:"times"`
	Dates  int `json:"dates" yaml:"dates"`
	URLs   int `json:"urls" yaml:"urls"`
	Alerts int `json:"alerts" yaml:"alerts"`
}

// ConvertReport builds the document shared by the JSON and YAML formatters.
// Nil slices become empty lists so both formats always carry every key.
func ConvertReport(report *detector.Report) ReportDocument {
	findings := detector.Findings{
		Emails: nonNil(report.Findings.Emails),
		IPs:    nonNil(report.Findings.IPs),
		Times:  nonNil(report.Findings.Times),
		Dates:  nonNil(report.Findings.Dates),
		URLs:   nonNil(report.Findings.URLs),
	}
	alerts := report.Alerts
	if alerts == nil {
		alerts = []detector.Alert{}
	}

	return ReportDocument{
		Tool:         "cyberforge-scan",
		Version:      version.Short(),
		Source:       report.Source,
		AnalysedAt:   report.AnalysedAt.Format(TimestampLayout),
		FileSize:     report.FileSize,
		Encoding:     report.Encoding,
		LinesScanned: report.LinesScanned,
		Summary: Summary{
			Emails: len(findings.Emails),
			IPs:    len(findings.IPs),
			Times:  len(findings.Times),
			Dates:  len(findings.Dates),
			URLs:   len(findings.URLs),
			Alerts: len(alerts),
		},
		Findings: findings,
		Alerts:   alerts,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
