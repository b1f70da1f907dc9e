// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

// Package gallery provides the portfolio data model: items hydrated
// from an image directory plus an optional YAML manifest, the ordered
// catalog snapshot the UI renders from, source-resolution fallback
// chains for full-resolution images and captions, circular index
// arithmetic for wrap-around navigation, and a live-reload watcher
// for the manifest.
//
// The catalog is an immutable snapshot: consumers take it from a
// Source and keep it for as long as their own semantics require. The
// gallery list refreshes on reload events; an open lightbox keeps the
// snapshot it hydrated from.
package gallery
