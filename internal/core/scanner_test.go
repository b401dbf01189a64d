// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cyberforge-scan/internal/detector"
	"cyberforge-scan/internal/formatters"
	"cyberforge-scan/internal/observability"
	"cyberforge-scan/internal/textdecode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

const endToEndLine = "2024-01-05 14:23:10 login failed for admin from 192.168.1.10 contact admin@example.com https://example.com/x"

func writeInput(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	return path
}

func TestScanFile_EndToEndLine(t *testing.T) {
	path := writeInput(t, "auth.log", []byte(endToEndLine+"\n"))

	result, err := ScanFile(ScanConfig{FilePath: path, Now: fixedClock})
	require.NoError(t, err)
	require.NotNil(t, result.Report)

	f := result.Report.Findings
	assert.Equal(t, []string{"2024-01-05"}, f.Dates)
	assert.Equal(t, []string{"14:23:10"}, f.Times)
	assert.Equal(t, []string{"192.168.1.10"}, f.IPs)
	assert.Equal(t, []string{"admin@example.com"}, f.Emails)
	assert.Equal(t, []string{"https://example.com/x"}, f.URLs)

	var keywords []string
	for _, a := range result.Report.Alerts {
		assert.Equal(t, 1, a.Line)
		assert.Equal(t, endToEndLine[:detector.AlertContentLimit], a.Content)
		assert.True(t, a.Truncated)
		keywords = append(keywords, a.Keyword)
	}
	assert.Equal(t, []string{"admin", "fail", "failed", "login"}, keywords)

	assert.Equal(t, "utf-8", result.Report.Encoding)
	assert.Equal(t, 1, result.Report.LinesScanned)
	assert.Equal(t, int64(len(endToEndLine)+1), result.Report.FileSize)
	assert.Equal(t, fixedClock(), result.Report.AnalysedAt)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.ReportPath, "no output file configured")
}

func TestScanFile_EmptyFile(t *testing.T) {
	path := writeInput(t, "empty.log", nil)

	result, err := ScanFile(ScanConfig{FilePath: path, Now: fixedClock})
	require.NoError(t, err, "an empty file is a successful scan")
	assert.True(t, result.Report.Findings.Empty())
	assert.Equal(t, 0, result.Report.LinesScanned)
	assert.NotNil(t, result.Report.Alerts)
	assert.Empty(t, result.Report.Alerts)
	for _, c := range detector.Categories {
		assert.NotNil(t, result.Report.Findings.Get(c), c.Key())
	}
}

func TestScanFile_BlankLinesAreCounted(t *testing.T) {
	path := writeInput(t, "blank.log", []byte("\n  \nroot shell opened\n\t\nbye\n"))

	result, err := ScanFile(ScanConfig{FilePath: path, Keywords: []string{"root"}})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Report.LinesScanned)
	require.Len(t, result.Report.Alerts, 1)
	assert.Equal(t, 3, result.Report.Alerts[0].Line)
	assert.Equal(t, "root shell opened", result.Report.Alerts[0].Content)
}

func TestScanFile_UniversalNewlines(t *testing.T) {
	path := writeInput(t, "mixed.log", []byte("one\r\ntwo token\rthree\nfour token"))

	result, err := ScanFile(ScanConfig{FilePath: path, Keywords: []string{"token"}})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Report.LinesScanned)
	require.Len(t, result.Report.Alerts, 2)
	assert.Equal(t, 2, result.Report.Alerts[0].Line)
	assert.Equal(t, "two token", result.Report.Alerts[0].Content)
	assert.Equal(t, 4, result.Report.Alerts[1].Line)
}

func TestScanFile_DeduplicatesAcrossLines(t *testing.T) {
	content := strings.Join([]string{
		"mail bob@example.com from 10.0.0.2",
		"mail alice@example.com from 10.0.0.10",
		"again bob@example.com from 10.0.0.2 and 999.1.1.1",
	}, "\n")
	path := writeInput(t, "dup.log", []byte(content))

	result, err := ScanFile(ScanConfig{FilePath: path, Keywords: []string{}})
	require.NoError(t, err)

	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, result.Report.Findings.Emails)
	assert.Equal(t, []string{"10.0.0.10", "10.0.0.2"}, result.Report.Findings.IPs, "lexicographic, not numeric, order")
	assert.Empty(t, result.Report.Alerts, "empty keyword list disables alerts")
}

func TestScanFile_RepeatedLinesRaiseRepeatedAlerts(t *testing.T) {
	path := writeInput(t, "repeat.log", []byte("login ok\nlogin ok\n"))

	result, err := ScanFile(ScanConfig{FilePath: path, Keywords: []string{"login", "LOGIN"}})
	require.NoError(t, err)

	require.Len(t, result.Report.Alerts, 4, "one alert per configured keyword on every line")
	var got []string
	for _, a := range result.Report.Alerts {
		got = append(got, fmt.Sprintf("%d:%s", a.Line, a.Keyword))
	}
	assert.Equal(t, []string{"1:login", "1:LOGIN", "2:login", "2:LOGIN"}, got)
}

func TestScanFile_LongLineAlertIsTruncated(t *testing.T) {
	line := "admin" + strings.Repeat("x", 495)
	path := writeInput(t, "long.log", []byte(line))

	result, err := ScanFile(ScanConfig{FilePath: path, Keywords: []string{"admin"}})
	require.NoError(t, err)

	require.Len(t, result.Report.Alerts, 1)
	alert := result.Report.Alerts[0]
	assert.Len(t, alert.Content, detector.AlertContentLimit)
	assert.Equal(t, line[:detector.AlertContentLimit], alert.Content)
	assert.True(t, alert.Truncated)
}

func TestScanFile_Latin1Fallback(t *testing.T) {
	utf8Text := "Café ouvert à 10:30 par bob@example.com depuis 172.16.0.4 - password reset\n"
	latin1Text := []byte("Caf\xe9 ouvert \xe0 10:30 par bob@example.com depuis 172.16.0.4 - password reset\n")

	utf8Result, err := ScanFile(ScanConfig{FilePath: writeInput(t, "utf8.log", []byte(utf8Text))})
	require.NoError(t, err)
	latinResult, err := ScanFile(ScanConfig{FilePath: writeInput(t, "latin1.log", latin1Text)})
	require.NoError(t, err)

	assert.Equal(t, "utf-8", utf8Result.Report.Encoding)
	assert.Equal(t, "latin-1", latinResult.Report.Encoding)
	assert.Equal(t, utf8Result.Report.Findings, latinResult.Report.Findings)
	assert.Equal(t, utf8Result.Report.Alerts, latinResult.Report.Alerts)
	require.NotEmpty(t, latinResult.Report.Alerts)
	assert.Contains(t, latinResult.Report.Alerts[0].Content, "Café")
}

func TestScanFile_FailedEncodingLeavesNoTrace(t *testing.T) {
	// The first line is valid UTF-8 and raises an alert; the invalid byte
	// only appears later, so the UTF-8 attempt must be discarded entirely.
	content := []byte("admin login\nna\xefve admin\n")
	path := writeInput(t, "late.log", content)

	var hooked []detector.Alert
	result, err := ScanFile(ScanConfig{
		FilePath: path,
		Keywords: []string{"admin"},
		Hooks:    ScanHooks{OnAlert: func(a detector.Alert) { hooked = append(hooked, a) }},
	})
	require.NoError(t, err)

	assert.Equal(t, "latin-1", result.Report.Encoding)
	assert.Equal(t, 2, result.Report.LinesScanned)
	assert.Len(t, result.Report.Alerts, 2)
	assert.Equal(t, result.Report.Alerts, hooked)
}

func TestScanFile_UndecodableFile(t *testing.T) {
	path := writeInput(t, "latin1.log", []byte("caf\xe9\n"))

	result, err := ScanFile(ScanConfig{
		FilePath:  path,
		Encodings: []textdecode.Decoder{textdecode.UTF8()},
	})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, KindUnreadableEncoding, KindOf(err))
	assert.True(t, errors.Is(err, ErrUnreadableEncoding))
	assert.True(t, errors.Is(err, textdecode.ErrUndecodable))
}

func TestScanFile_FatalErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		cfg      ScanConfig
		wantKind ErrorKind
		sentinel error
	}{
		{
			name:     "missing file",
			cfg:      ScanConfig{FilePath: filepath.Join(dir, "missing.log")},
			wantKind: KindPathNotFound,
			sentinel: ErrPathNotFound,
		},
		{
			name:     "directory",
			cfg:      ScanConfig{FilePath: dir},
			wantKind: KindUnexpected,
		},
		{
			name:     "unknown format",
			cfg:      ScanConfig{FilePath: writeInput(t, "ok.log", []byte("hi")), Format: "sarif"},
			wantKind: KindUnexpected,
		},
		{
			name:     "missing file reported before unknown format",
			cfg:      ScanConfig{FilePath: filepath.Join(dir, "gone.log"), Format: "sarif"},
			wantKind: KindPathNotFound,
			sentinel: ErrPathNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ScanFile(tt.cfg)
			require.Error(t, err)
			assert.Nil(t, result, "no partial results on fatal errors")
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.True(t, KindOf(err).Fatal())
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}
}

func TestScanFile_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}
	path := writeInput(t, "secret.log", []byte("hidden"))
	require.NoError(t, os.Chmod(path, 0000))

	_, err := ScanFile(ScanConfig{FilePath: path})
	require.Error(t, err)
	assert.Equal(t, KindPermissionDenied, KindOf(err))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestScanFile_UnsupportedExtensionWarns(t *testing.T) {
	path := writeInput(t, "events.csv", []byte("user admin logged in\n"))

	var warnings []*ScanError
	result, err := ScanFile(ScanConfig{
		FilePath: path,
		Hooks:    ScanHooks{OnWarning: func(w *ScanError) { warnings = append(warnings, w) }},
	})
	require.NoError(t, err, "extension warnings do not abort the scan")

	require.Len(t, warnings, 1)
	assert.Equal(t, KindUnsupportedExtension, warnings[0].Kind)
	assert.ErrorIs(t, warnings[0], ErrUnsupportedExtension)
	assert.False(t, warnings[0].Kind.Fatal())
	assert.Equal(t, warnings, result.Warnings)
	assert.NotEmpty(t, result.Report.Alerts)
}

func TestScanFile_ExtensionMatchIgnoresCase(t *testing.T) {
	path := writeInput(t, "SERVER.LOG", []byte("ok"))

	result, err := ScanFile(ScanConfig{FilePath: path})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestScanFile_WritesAndTruncatesReport(t *testing.T) {
	path := writeInput(t, "app.log", []byte(endToEndLine))
	output := filepath.Join(t.TempDir(), formatters.DefaultReportFile)
	require.NoError(t, os.WriteFile(output, []byte(strings.Repeat("stale content\n", 500)), 0600))

	result, err := ScanFile(ScanConfig{FilePath: path, OutputFile: output, Now: fixedClock})
	require.NoError(t, err)
	require.Nil(t, result.ReportErr)
	assert.Equal(t, output, result.ReportPath)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	content := string(data)
	assert.NotContains(t, content, "stale content")
	assert.True(t, strings.HasPrefix(content, strings.Repeat("=", 80)+"\n"))
	assert.Contains(t, content, "Analysis date: 2026-03-14 09:26:53")
	assert.Contains(t, content, "  1. admin@example.com")
	assert.Contains(t, content, "SECURITY ALERTS (4):")
}

func TestScanFile_IsIdempotent(t *testing.T) {
	path := writeInput(t, "app.log", []byte(endToEndLine+"\nsecond line with token\n"))
	output := filepath.Join(t.TempDir(), "report.json")
	cfg := ScanConfig{FilePath: path, OutputFile: output, Format: "json", Now: fixedClock}

	first, err := ScanFile(cfg)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(output)
	require.NoError(t, err)

	second, err := ScanFile(cfg)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(output)
	require.NoError(t, err)

	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, firstBytes, secondBytes)
}

func TestScanFile_WriteFailureKeepsResults(t *testing.T) {
	path := writeInput(t, "app.log", []byte(endToEndLine))
	output := filepath.Join(t.TempDir(), "missing-dir", "report.txt")

	result, err := ScanFile(ScanConfig{FilePath: path, OutputFile: output})
	require.NoError(t, err, "write failures are not fatal")
	require.NotNil(t, result.Report)
	require.NotNil(t, result.ReportErr)
	assert.Equal(t, KindWriteFailure, result.ReportErr.Kind)
	assert.ErrorIs(t, result.ReportErr, ErrWriteFailure)
	assert.Empty(t, result.ReportPath)
	assert.Equal(t, []string{"admin@example.com"}, result.Report.Findings.Emails)
}

func TestScanFile_LineTooLong(t *testing.T) {
	path := writeInput(t, "huge.log", []byte(strings.Repeat("a", 128)+"\n"))

	_, err := ScanFile(ScanConfig{FilePath: path, MaxLineBytes: 64})
	require.Error(t, err)
	assert.Equal(t, KindUnexpected, KindOf(err))
	assert.Contains(t, err.Error(), "reading line 1")
}

func TestScanFile_LongLineWithoutLimit(t *testing.T) {
	long := strings.Repeat("a", 200*1024) + " root 10.0.0.1"
	path := writeInput(t, "wide.log", []byte(long+"\nnext line\n"))

	result, err := ScanFile(ScanConfig{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Report.LinesScanned)
	assert.Equal(t, []string{"10.0.0.1"}, result.Report.Findings.IPs)
	require.Len(t, result.Report.Alerts, 1)
	assert.Equal(t, "root", result.Report.Alerts[0].Keyword)
	assert.True(t, result.Report.Alerts[0].Truncated)
}

func TestScanFile_DebugObserver(t *testing.T) {
	path := writeInput(t, "app.log", []byte(endToEndLine))
	var buf bytes.Buffer
	debugObs := observability.NewDebugObserver(&buf)

	_, err := ScanFile(ScanConfig{FilePath: path, Observer: debugObs.StandardObserver})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "> ingest: scan_file")
	assert.Contains(t, out, "trying encoding utf-8")
	assert.Contains(t, out, "# ingest: alerts = 4")
	assert.Contains(t, out, fmt.Sprintf("# ingest: keywords = %d", len(detector.DefaultKeywords)))
	assert.Contains(t, out, `"operation":"decode"`)
}
