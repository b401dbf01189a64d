// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"fmt"
	"io/fs"

	"cyberforge-scan/internal/textdecode"
)

// ErrorKind classifies scan failures for reporting
type ErrorKind int

const (
	KindUnexpected           ErrorKind = iota
	KindPathNotFound                   // Input path does not exist
	KindUnsupportedExtension           // Warning only, scan continues
	KindUnreadableEncoding             // No candidate encoding decoded the file
	KindPermissionDenied               // File exists but cannot be opened
	KindWriteFailure                   // Report could not be written
)

// Sentinel errors matched by errors.Is on a *ScanError of the same kind
var (
	ErrPathNotFound         = errors.New("file not found")
	ErrUnsupportedExtension = errors.New("non-standard file extension")
	ErrUnreadableEncoding   = errors.New("file cannot be decoded with the supported encodings")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrWriteFailure         = errors.New("report could not be written")
)

func (k ErrorKind) String() string {
	switch k {
	case KindPathNotFound:
		return "PathNotFound"
	case KindUnsupportedExtension:
		return "UnsupportedExtension"
	case KindUnreadableEncoding:
		return "UnreadableEncoding"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindWriteFailure:
		return "WriteFailure"
	}
	return "Unexpected"
}

// Fatal reports whether an error of this kind aborts the scan
func (k ErrorKind) Fatal() bool {
	return k != KindUnsupportedExtension && k != KindWriteFailure
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindPathNotFound:
		return ErrPathNotFound
	case KindUnsupportedExtension:
		return ErrUnsupportedExtension
	case KindUnreadableEncoding:
		return ErrUnreadableEncoding
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindWriteFailure:
		return ErrWriteFailure
	}
	return nil
}

// ScanError wraps an error with its kind and the path involved
type ScanError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrPathNotFound) and friends match by kind
func (e *ScanError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}

// ClassifyError wraps err in a *ScanError for path, picking a kind from its cause
func ClassifyError(err error, path string) *ScanError {
	if err == nil {
		return nil
	}

	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}

	kind := KindUnexpected
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindPathNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	case errors.Is(err, textdecode.ErrUndecodable):
		kind = KindUnreadableEncoding
	}
	return &ScanError{Kind: kind, Path: path, Err: err}
}

// KindOf returns the kind of err; unclassified errors are KindUnexpected
func KindOf(err error) ErrorKind {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}
	return KindUnexpected
}
