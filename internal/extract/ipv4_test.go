// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIPv4(t *testing.T) {
	cases := []struct {
		ip    string
		valid bool
	}{
		{"0.0.0.0", true},
		{"255.255.255.255", true},
		{"192.168.1.10", true},
		{"010.001.1.1", true},
		{"999.1.1.1", false},
		{"256.0.0.1", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{"1..3.4", false},
		{"a.b.c.d", false},
		{"-1.2.3.4", false},
		{"+1.2.3.4", false},
		{"", false},
		{"99999999999999999999.1.1.1", false},
	}
	for _, tc := range cases {
		t.Run(tc.ip, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidIPv4(tc.ip))
		})
	}
}

func TestFilterIPv4(t *testing.T) {
	got := FilterIPv4([]string{"10.0.0.1", "999.1.1.1", "255.255.255.255"})
	assert.Equal(t, []string{"10.0.0.1", "255.255.255.255"}, got)
	assert.Nil(t, FilterIPv4(nil))
}
