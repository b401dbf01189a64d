// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package textdecode

import (
	"bufio"
	"io"
	"math"
)

// NoLineLimit lets a physical line grow as large as memory allows
const NoLineLimit = 0

const initialLineBuffer = 64 * 1024

// ScanUniversalLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a
// lone "\r". The terminator is not part of the token.
func ScanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// a following "\n" may still arrive
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewLineScanner returns a scanner over r using ScanUniversalLines.
// maxLineBytes <= 0 (NoLineLimit) leaves line length unbounded; a positive
// value makes longer lines fail with bufio.ErrTooLong.
func NewLineScanner(r io.Reader, maxLineBytes int) *bufio.Scanner {
	if maxLineBytes <= NoLineLimit {
		maxLineBytes = math.MaxInt
	}
	initial := min(initialLineBuffer, maxLineBytes)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLineBytes)
	scanner.Split(ScanUniversalLines)
	return scanner
}
