// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"testing"

	"cyberforge-scan/internal/formatters"

	"github.com/stretchr/testify/assert"
)

func newTestSystem() (*System, *bytes.Buffer) {
	var buf bytes.Buffer
	h := NewSystem(&buf, true)
	h.RegisterField(FieldInfo{
		Key:         "ips",
		Label:       "IP addresses",
		Description: "Dotted-quad IPv4 candidate",
		Pattern:     `\d+\.\d+\.\d+\.\d+`,
		Notes:       []string{"Every octet must be in 0-255"},
		Examples:    []string{"192.168.1.10"},
	})
	h.RegisterField(FieldInfo{Key: "emails", Label: "Emails", Description: "local@domain.tld email address"})
	return h, &buf
}

func TestShowGeneralHelp(t *testing.T) {
	h, buf := newTestSystem()
	h.ShowGeneralHelp()

	out := buf.String()
	assert.Contains(t, out, "USAGE:")
	assert.Contains(t, out, "--keywords")
	assert.Contains(t, out, "CYBERFORGE_CONFIG_DIR")
	assert.NotContains(t, out, "\x1b[", "colors must be disabled")
	assert.NotContains(t, out, "REPORT FORMATS:")
}

func TestShowGeneralHelp_FormatsFromRegistry(t *testing.T) {
	h, buf := newTestSystem()
	h.SetFormats([]formatters.FormatInfo{
		{Name: "json", Description: "JSON document", Extension: ".json"},
		{Name: "text", Description: "Plain text report", Extension: ".txt"},
	})
	h.ShowGeneralHelp()

	out := buf.String()
	assert.Contains(t, out, "Report format: json, text (default: text)")
	assert.Contains(t, out, "REPORT FORMATS:")
	assert.Regexp(t, `json\s+\.json\s+JSON document`, out)
}

func TestShowFieldsHelp_Sorted(t *testing.T) {
	h, buf := newTestSystem()
	h.ShowFieldsHelp()

	out := buf.String()
	emails := bytes.Index(buf.Bytes(), []byte("emails"))
	ips := bytes.Index(buf.Bytes(), []byte("ips "))
	assert.True(t, emails >= 0 && ips > emails, out)
}

func TestShowFieldHelp(t *testing.T) {
	h, buf := newTestSystem()

	assert.True(t, h.ShowFieldHelp("IPS"))
	out := buf.String()
	assert.Contains(t, out, "IP addresses")
	assert.Contains(t, out, `\d+\.\d+\.\d+\.\d+`)
	assert.Contains(t, out, "Every octet must be in 0-255")
	assert.Contains(t, out, "192.168.1.10")

	buf.Reset()
	assert.False(t, h.ShowFieldHelp("phones"))
	assert.Contains(t, buf.String(), "field 'phones' not found")
}

func TestShowKeywordsHelp(t *testing.T) {
	h, buf := newTestSystem()
	h.ShowKeywordsHelp([]string{"a", "b", "c", "d", "e", "f", "g"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	last := string(lines[len(lines)-1])
	assert.Equal(t, "  g", last)
}
