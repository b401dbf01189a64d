// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import "cyberforge-scan/internal/formatters"

// Analyse scans path and writes the text report to formatters.DefaultReportFile.
// It returns the five sorted sequences emails, ips, times, dates, urls. Every
// problem is handed to notify; on a fatal one the five sequences are empty, the
// same as for an empty file. Use ScanFile to tell the two cases apart.
func Analyse(path string, keywords []string, notify func(error)) (emails, ips, times, dates, urls []string) {
	if notify == nil {
		notify = func(error) {}
	}

	result, err := ScanFile(ScanConfig{
		FilePath:   path,
		Keywords:   keywords,
		OutputFile: formatters.DefaultReportFile,
		Hooks: ScanHooks{
			OnWarning: func(w *ScanError) { notify(w) },
		},
	})
	if err != nil {
		notify(err)
		return []string{}, []string{}, []string{}, []string{}, []string{}
	}
	if result.ReportErr != nil {
		notify(result.ReportErr)
	}

	return result.Report.Findings.Sequences()
}
