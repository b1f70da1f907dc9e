// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogRecordMsg delivers a slog record to the model for display in
// the status bar. Only records at or above the handler's configured
// level are delivered.
type LogRecordMsg struct {
	// Summary is the one-line message shown in the status bar.
	Summary string

	// Level drives styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears an expired log message from the status bar.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long log messages stay visible before
// the status bar returns to the help line.
const logRecordFadeDelay = 5 * time.Second

// LogHandler is a slog.Handler that routes records into the running
// bubbletea program as messages. Records below the configured level
// are dropped, as are records arriving before SetProgram is called.
//
// Handlers derived via WithAttrs/WithGroup share the same program
// pointer, so one SetProgram call covers all of them.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewLogHandler creates a handler delivering records at or above the
// given level. Call SetProgram once the tea.Program exists.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to
// call from any goroutine.
func (handler *LogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled reports whether the handler wants records at this level.
func (handler *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as a one-line summary and sends it to
// the program.
func (handler *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}

	program.Send(LogRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &LogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   combined,
	}
}

// WithGroup returns a derived handler. Group nesting is flattened;
// the status bar has no room for structure.
func (handler *LogHandler) WithGroup(string) slog.Handler {
	return handler
}
