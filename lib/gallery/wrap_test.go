// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import "testing"

func TestWrapNext(t *testing.T) {
	tests := []struct {
		index, length, want int
	}{
		{0, 5, 1},
		{3, 5, 4},
		{4, 5, 0},
		{0, 1, 0},
		{0, 0, 0},
		{2, -1, 0},
	}
	for _, test := range tests {
		if got := WrapNext(test.index, test.length); got != test.want {
			t.Errorf("WrapNext(%d, %d) = %d, want %d", test.index, test.length, got, test.want)
		}
	}
}

func TestWrapPrev(t *testing.T) {
	tests := []struct {
		index, length, want int
	}{
		{1, 5, 0},
		{0, 5, 4},
		{4, 5, 3},
		{0, 1, 0},
		{0, 0, 0},
	}
	for _, test := range tests {
		if got := WrapPrev(test.index, test.length); got != test.want {
			t.Errorf("WrapPrev(%d, %d) = %d, want %d", test.index, test.length, got, test.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		index, length, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{7, 5, 2},
		{-1, 5, 4},
		{-6, 5, 4},
		{3, 0, 0},
	}
	for _, test := range tests {
		if got := Normalize(test.index, test.length); got != test.want {
			t.Errorf("Normalize(%d, %d) = %d, want %d", test.index, test.length, got, test.want)
		}
	}
}

// A full cycle of WrapNext visits every index exactly once and
// returns to the start.
func TestWrapCycle(t *testing.T) {
	const length = 7
	seen := make(map[int]bool)
	index := 0
	for step := 0; step < length; step++ {
		if seen[index] {
			t.Fatalf("index %d visited twice", index)
		}
		seen[index] = true
		index = WrapNext(index, length)
	}
	if index != 0 {
		t.Errorf("cycle ended at %d, want 0", index)
	}
}
