// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

// Item is one gallery image with its manifest metadata. Paths are
// absolute, resolved at hydration time.
type Item struct {
	// Name is the stable identifier: the display file's base name.
	// Cursor stability across catalog reloads keys on it.
	Name string

	// Path is the display image on disk.
	Path string

	// FullPath is the explicit full-resolution override from the
	// manifest; empty when the manifest declares none.
	FullPath string

	// LinkPath is the manifest's link target for the item, used as
	// the last resort of the full-source fallback chain when it
	// names a local image file.
	LinkPath string

	// Caption is the manifest caption (markdown). Empty means the
	// caption chain falls through to the sidecar file.
	Caption string

	// Tags are the manifest tags, used by the filter.
	Tags []string
}

// HasTag reports whether the item carries the given tag.
func (item Item) HasTag(tag string) bool {
	for _, candidate := range item.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
