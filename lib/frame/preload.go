// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"log/slog"
	"os"
	"time"
)

// Load returns the frame for an image at the given geometry, using
// the cache when possible and rendering on a miss. The rendered
// result is stored back.
func Load(cache *Cache, path string, columns, rows int) (Frame, error) {
	info, err := os.Stat(path)
	var modTime time.Time
	if err == nil {
		modTime = info.ModTime()
	}

	key := Key(path, modTime, columns, rows)
	if frame, ok := cache.Get(key); ok {
		return frame, nil
	}

	source, err := Decode(path)
	if err != nil {
		return Frame{}, err
	}
	rendered, err := Render(source, columns, rows)
	if err != nil {
		return Frame{}, err
	}

	if err := cache.Put(key, rendered); err != nil {
		slog.Debug("frame cache write failed", "path", path, "error", err)
	}
	return rendered, nil
}

// PreloadNeighbors renders the given image paths into the cache in
// the background. Paths already cached and the empty string are
// skipped; duplicates are rendered once. Failures are logged at debug
// level and otherwise ignored, since the foreground load reports its
// own errors when the user actually navigates there.
func PreloadNeighbors(cache *Cache, paths []string, columns, rows int) {
	seen := make(map[string]bool, len(paths))
	for _, path := range paths {
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		go func(path string) {
			if _, err := Load(cache, path, columns, rows); err != nil {
				slog.Debug("preload failed", "path", path, "error", err)
			}
		}(path)
	}
}
