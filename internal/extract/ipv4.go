// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"
)

// ValidIPv4 re-checks a dotted-quad candidate: four decimal segments, each in 0-255.
// The extraction grammar already bounds every octet; this is a second pass over
// untrusted input and never panics.
func ValidIPv4(ip string) bool {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return false
	}
	for _, octet := range octets {
		if octet == "" {
			return false
		}
		for _, r := range octet {
			if r < '0' || r > '9' {
				return false
			}
		}
		n, err := strconv.Atoi(octet)
		if err != nil || n < 0 || n > 255 {
			return false
		}
	}
	return true
}

// FilterIPv4 keeps the candidates accepted by ValidIPv4, in order
func FilterIPv4(candidates []string) []string {
	var valid []string
	for _, c := range candidates {
		if ValidIPv4(c) {
			valid = append(valid, c)
		}
	}
	return valid
}
