// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"testing"
	"time"
)

func TestSourceSnapshotAndReplace(t *testing.T) {
	source := NewSource(Catalog{Title: "first", Items: []Item{{Name: "a.jpg"}}})

	snapshot := source.Snapshot()
	if snapshot.Title != "first" || snapshot.Len() != 1 {
		t.Fatalf("unexpected initial snapshot: %+v", snapshot)
	}

	source.Replace(Catalog{Title: "second", Items: []Item{{Name: "a.jpg"}, {Name: "b.jpg"}}})
	replaced := source.Snapshot()
	if replaced.Title != "second" || replaced.Len() != 2 {
		t.Fatalf("unexpected replaced snapshot: %+v", replaced)
	}

	// The earlier snapshot is unaffected by the replacement.
	if snapshot.Title != "first" || snapshot.Len() != 1 {
		t.Errorf("earlier snapshot mutated: %+v", snapshot)
	}
}

func TestSourceSubscribeNotifies(t *testing.T) {
	source := NewSource(Catalog{})
	events := source.Subscribe()

	source.Replace(Catalog{Items: []Item{{Name: "a.jpg"}, {Name: "b.jpg"}, {Name: "c.jpg"}}})

	select {
	case event := <-events:
		if event.Kind != "reload" {
			t.Errorf("event kind = %q, want reload", event.Kind)
		}
		if event.Count != 3 {
			t.Errorf("event count = %d, want 3", event.Count)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestSourceSlowSubscriberDoesNotBlockReplace(t *testing.T) {
	source := NewSource(Catalog{})
	source.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		// More replacements than the subscriber's buffer holds.
		for i := 0; i < 32; i++ {
			source.Replace(Catalog{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Replace blocked on an undrained subscriber")
	}
}
