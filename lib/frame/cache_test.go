// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"strings"
	"testing"
	"time"
)

func testFrame(marker string) Frame {
	return Frame{
		Lines:  []string{strings.Repeat(marker, 40), strings.Repeat(marker, 40)},
		Width:  40,
		Height: 2,
	}
}

func TestKeyDistinguishesInputs(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	reference := Key("/gallery/harbor.jpg", base, 80, 24)
	variants := []string{
		Key("/gallery/aurora.jpg", base, 80, 24),
		Key("/gallery/harbor.jpg", base.Add(time.Second), 80, 24),
		Key("/gallery/harbor.jpg", base, 81, 24),
		Key("/gallery/harbor.jpg", base, 80, 25),
	}
	for index, variant := range variants {
		if variant == reference {
			t.Errorf("variant %d collides with reference key", index)
		}
	}

	if again := Key("/gallery/harbor.jpg", base, 80, 24); again != reference {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestCacheMemoryTier(t *testing.T) {
	cache, err := NewCache(4, "", CompressionNone)
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("empty cache reported a hit")
	}

	if err := cache.Put("a", testFrame("A")); err != nil {
		t.Fatal(err)
	}
	got, ok := cache.Get("a")
	if !ok {
		t.Fatal("stored frame not found")
	}
	if got.Width != 40 || got.Height != 2 {
		t.Errorf("frame geometry %dx%d, want 40x2", got.Width, got.Height)
	}
}

func TestCacheLRUEviction(t *testing.T) {
	cache, err := NewCache(2, "", CompressionNone)
	if err != nil {
		t.Fatal(err)
	}

	cache.Put("a", testFrame("A"))
	cache.Put("b", testFrame("B"))

	// Touch "a" so "b" becomes the eviction candidate.
	cache.Get("a")
	cache.Put("c", testFrame("C"))

	if !cache.Contains("a") {
		t.Error("recently used entry was evicted")
	}
	if cache.Contains("b") {
		t.Error("least recently used entry survived eviction")
	}
	if !cache.Contains("c") {
		t.Error("newest entry missing")
	}
}

func TestCacheDiskTier(t *testing.T) {
	directory := t.TempDir()

	first, err := NewCache(8, directory, CompressionLZ4)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Put("persistent", testFrame("P")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// A fresh cache over the same directory finds the entry on disk.
	second, err := NewCache(8, directory, CompressionLZ4)
	if err != nil {
		t.Fatal(err)
	}
	restored, ok := second.Get("persistent")
	if !ok {
		t.Fatal("disk tier entry not found by fresh cache")
	}
	if len(restored.Lines) != 2 || restored.Lines[0] != strings.Repeat("P", 40) {
		t.Errorf("restored frame corrupted: %+v", restored)
	}

	// The disk hit was promoted into memory.
	if !second.Contains("persistent") {
		t.Error("disk hit not promoted to memory tier")
	}
}
