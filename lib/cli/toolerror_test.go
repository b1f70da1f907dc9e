// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestToolError_ErrorWithoutHint(t *testing.T) {
	err := Validation("missing required flag --dir")
	if err.Error() != "missing required flag --dir" {
		t.Errorf("Error() = %q, want %q", err.Error(), "missing required flag --dir")
	}
}

func TestToolError_ErrorWithHint(t *testing.T) {
	err := NotFound("gallery directory %q does not exist", "photos").
		WithHint("Pass --dir <path> or set gallery_dir in config.jsonc.")

	want := "gallery directory \"photos\" does not exist\n\nPass --dir <path> or set gallery_dir in config.jsonc."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestToolError_WithHintReturnsReceiver(t *testing.T) {
	original := Validation("bad input")
	chained := original.WithHint("fix it")
	if original != chained {
		t.Error("WithHint should return the same pointer")
	}
}

func TestToolError_HintSurvivesErrorsAs(t *testing.T) {
	inner := Validation("bad manifest").WithHint("check gallery.yaml syntax")
	wrapped := fmt.Errorf("startup failed: %w", inner)

	var toolErr *ToolError
	if !errors.As(wrapped, &toolErr) {
		t.Fatal("errors.As should find ToolError in wrapped chain")
	}
	if toolErr.Hint != "check gallery.yaml syntax" {
		t.Errorf("Hint = %q after unwrap, want %q", toolErr.Hint, "check gallery.yaml syntax")
	}
}

func TestToolError_EmptyHintNotAppended(t *testing.T) {
	err := Internal("unexpected failure")
	if strings.Contains(err.Error(), "\n\n") {
		t.Error("empty hint should not add blank line to error message")
	}
}

func TestToolError_AllCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category ErrorCategory
	}{
		{"Validation", Validation("bad"), CategoryValidation},
		{"NotFound", NotFound("missing"), CategoryNotFound},
		{"Transient", Transient("busy"), CategoryTransient},
		{"Internal", Internal("bug"), CategoryInternal},
	}
	for _, test := range tests {
		if test.err.Category != test.category {
			t.Errorf("%s: Category = %q, want %q", test.name, test.err.Category, test.category)
		}
	}
}

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 2}
	if err.ExitCode() != 2 {
		t.Errorf("ExitCode() = %d, want 2", err.ExitCode())
	}
	if !strings.Contains(err.Error(), "2") {
		t.Errorf("Error() should mention the code, got %q", err.Error())
	}
}
