// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveFullSource returns the path of the best available
// full-resolution image for an item, trying in order:
//
//  1. the item's explicit full-resolution path from the manifest;
//  2. a sibling full/<name> variant next to the display image;
//  3. the display image itself;
//  4. the item's link target, when it names a local image file.
//
// Each step is skipped when its candidate does not exist on disk.
// Returns empty when nothing resolves; the lightbox treats that as a
// soft failure and keeps its previous frame.
func ResolveFullSource(item Item) string {
	if item.FullPath != "" && fileExists(item.FullPath) {
		return item.FullPath
	}

	if item.Path != "" {
		sibling := filepath.Join(filepath.Dir(item.Path), "full", filepath.Base(item.Path))
		if fileExists(sibling) {
			return sibling
		}
	}

	if item.Path != "" && fileExists(item.Path) {
		return item.Path
	}

	if item.LinkPath != "" && isLocalImagePath(item.LinkPath) && fileExists(item.LinkPath) {
		return item.LinkPath
	}

	return ""
}

// ResolveCaption returns the item's caption, trying the manifest
// caption first and then a sidecar markdown file next to the display
// image (<name without extension>.md). Returns empty when neither
// yields text.
func ResolveCaption(item Item) string {
	if item.Caption != "" {
		return item.Caption
	}

	if item.Path == "" {
		return ""
	}
	extension := filepath.Ext(item.Path)
	sidecar := strings.TrimSuffix(item.Path, extension) + ".md"
	data, err := os.ReadFile(sidecar)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// CaptionFirstLine returns the first non-blank line of a caption with
// markdown emphasis markers stripped, for use in single-line contexts
// (announcements, list rows).
func CaptionFirstLine(caption string) string {
	for _, line := range strings.Split(caption, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return strings.Trim(trimmed, "*_`#> ")
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// isLocalImagePath reports whether a link target names a local image
// file rather than a URL.
func isLocalImagePath(path string) bool {
	if strings.Contains(path, "://") {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}
