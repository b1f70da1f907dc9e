// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package frame decodes gallery images and renders them as terminal
// cell frames. A frame is a slice of styled lines using half-block
// characters, two image rows per terminal row. Rendered frames are
// cached in memory with an optional compressed disk tier so that
// revisiting an image or resizing back to a previous geometry does
// not repeat the decode and scale work.
package frame
