// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package announce

// FocusMemory remembers where focus was before a modal took over, so
// closing the modal can put it back. It holds a single slot: opening
// a modal while another memory is pending overwrites it, and the
// later restore wins.
type FocusMemory[Region comparable] struct {
	region Region
	held   bool
}

// Remember stores the region to restore later, replacing any pending
// memory.
func (memory *FocusMemory[Region]) Remember(region Region) {
	memory.region = region
	memory.held = true
}

// Restore returns the remembered region and clears the slot. The
// second result is false when nothing was remembered, in which case
// the caller keeps its current focus.
func (memory *FocusMemory[Region]) Restore() (Region, bool) {
	if !memory.held {
		var zero Region
		return zero, false
	}
	memory.held = false
	return memory.region, true
}

// Pending reports whether a restore is waiting.
func (memory *FocusMemory[Region]) Pending() bool {
	return memory.held
}
