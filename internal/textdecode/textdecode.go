// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package textdecode turns raw file lines into text using an ordered list of
// candidate encodings.
package textdecode

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable is returned when no candidate encoding can decode the input
var ErrUndecodable = errors.New("no supported encoding could decode the input")

// Decoder converts the bytes of one line to a string
type Decoder interface {
	Name() string
	Decode(line []byte) (string, error)
}

// InvalidByteError reports the first byte a strict decoder rejected
type InvalidByteError struct {
	Encoding string
	Offset   int
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("invalid %s byte sequence at offset %d", e.Encoding, e.Offset)
}

type utf8Decoder struct{}

func (utf8Decoder) Name() string { return "utf-8" }

func (utf8Decoder) Decode(line []byte) (string, error) {
	if !utf8.Valid(line) {
		offset := 0
		for offset < len(line) {
			r, size := utf8.DecodeRune(line[offset:])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			offset += size
		}
		return "", &InvalidByteError{Encoding: "utf-8", Offset: offset}
	}
	return string(line), nil
}

// charmapDecoder wraps a single-byte x/text charmap
type charmapDecoder struct {
	name string
	enc  encoding.Encoding
}

func (d charmapDecoder) Name() string { return d.name }

func (d charmapDecoder) Decode(line []byte) (string, error) {
	out, err := d.enc.NewDecoder().Bytes(line)
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.name, err)
	}
	return string(out), nil
}

// UTF8 is a strict UTF-8 decoder: any malformed sequence is an error
func UTF8() Decoder { return utf8Decoder{} }

// Latin1 decodes ISO-8859-1 under its common alias
func Latin1() Decoder { return charmapDecoder{name: "latin-1", enc: charmap.ISO8859_1} }

// Windows1252 decodes the Windows western European code page
func Windows1252() Decoder { return charmapDecoder{name: "windows-1252", enc: charmap.Windows1252} }

// ISO88591 decodes ISO-8859-1
func ISO88591() Decoder { return charmapDecoder{name: "iso-8859-1", enc: charmap.ISO8859_1} }

// DefaultCandidates returns the encodings tried, in priority order
func DefaultCandidates() []Decoder {
	return []Decoder{UTF8(), Latin1(), Windows1252(), ISO88591()}
}

// Attempt runs fn once per candidate until one completes without error.
// fn must discard any state built during a failed attempt. Errors other than
// decoding failures stop the loop and are returned as-is.
func Attempt(candidates []Decoder, fn func(Decoder) error) (Decoder, error) {
	var lastErr error
	for _, d := range candidates {
		err := fn(d)
		if err == nil {
			return d, nil
		}
		if !IsDecodeError(err) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		return nil, ErrUndecodable
	}
	return nil, fmt.Errorf("%w: %v", ErrUndecodable, lastErr)
}

// DecodeError marks a failure caused by the bytes of the input
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err comes from a decoder rejecting input
func IsDecodeError(err error) bool {
	var de *DecodeError
	var ib *InvalidByteError
	return errors.As(err, &de) || errors.As(err, &ib)
}
