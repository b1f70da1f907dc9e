// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI primitives for Lumen:
// the color theme, ANSI-aware overlay compositing for modal surfaces,
// fuzzy matching for the gallery filter, a terminal markdown renderer
// for captions, and a scrollbar.
package tui
