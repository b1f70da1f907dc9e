// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import "sync"

// Event describes a change to the catalog held by a Source, delivered
// via the Subscribe channel for live-updating UIs.
type Event struct {
	// Kind is "reload" for full catalog replacement (the only change
	// the manifest watcher produces).
	Kind string

	// Count is the item count after the change.
	Count int
}

// Source is a concurrency-safe holder of the current Catalog. The
// watcher goroutine replaces the catalog; UI code takes snapshots.
// Subscribers receive an Event per replacement on a buffered channel;
// events are dropped rather than blocking when a subscriber lags,
// since the subscriber re-snapshots on receipt anyway.
type Source struct {
	mutex       sync.RWMutex
	catalog     Catalog
	subscribers []chan Event
}

// NewSource creates a Source holding the given catalog.
func NewSource(catalog Catalog) *Source {
	return &Source{catalog: catalog}
}

// Snapshot returns the current catalog. The returned value is shared
// and must be treated as read-only.
func (source *Source) Snapshot() Catalog {
	source.mutex.RLock()
	defer source.mutex.RUnlock()
	return source.catalog
}

// Replace swaps in a new catalog and dispatches a reload event to all
// subscribers. Safe for concurrent use.
func (source *Source) Replace(catalog Catalog) {
	source.mutex.Lock()
	source.catalog = catalog
	// Snapshot the subscriber list under lock; dispatch after
	// release. The list is append-only, so this is safe.
	subscribers := source.subscribers
	source.mutex.Unlock()

	event := Event{Kind: "reload", Count: len(catalog.Items)}
	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Buffer full, drop. The subscriber re-snapshots on its
			// next event.
		}
	}
}

// Subscribe returns a channel receiving an Event per catalog
// replacement.
func (source *Source) Subscribe() <-chan Event {
	source.mutex.Lock()
	defer source.mutex.Unlock()
	channel := make(chan Event, 8)
	source.subscribers = append(source.subscribers, channel)
	return channel
}
