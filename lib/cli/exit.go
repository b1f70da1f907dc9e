// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. When main receives an ExitError it exits with the
// specified code without writing the error string; the command is
// expected to have already produced its own output.
//
// Used by lumen-doccheck, where exit code 1 ("drift found") is a
// valid outcome rather than an unexpected error.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Each main checks for this interface
// on returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
