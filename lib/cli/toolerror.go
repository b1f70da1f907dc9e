// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides shared helpers for Lumen command-line
// entrypoints: categorized errors with actionable hints, and exit
// code signaling.
package cli

import "fmt"

// ErrorCategory classifies command errors so that main functions can
// choose exit behavior without parsing error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing flags, unparseable values, unexpected arguments. The
	// caller should fix the invocation and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not
	// exist: missing gallery directory, unknown manifest entry.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient indicates a temporary failure: an I/O race
	// with a concurrent writer, a watch descriptor limit. Retrying
	// may succeed.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, parse
	// failures on data the program itself produced.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by command-level code. It
// wraps an inner error, preserving the chain for errors.Is/As, and
// optionally carries a hint with a concrete next step for the user.
// Use the category constructors (Validation, NotFound, ...) rather
// than constructing ToolError directly.
type ToolError struct {
	// Category classifies the error.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional actionable suggestion, shown after the
	// message separated by a blank line.
	Hint string
}

// Error returns the message, with the hint appended after a blank
// line when one is set.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the ToolError wrapper.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches an actionable suggestion and returns the receiver
// so constructors chain: Validation("...").WithHint("...").
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may
// succeed on retry.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or
// I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
