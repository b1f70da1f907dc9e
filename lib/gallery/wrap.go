// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

// WrapNext returns the circular successor of index in a sequence of
// the given length: (index+1) mod length. Navigation always wraps;
// there is no boundary state. Returns 0 for empty sequences.
func WrapNext(index, length int) int {
	if length <= 0 {
		return 0
	}
	return (index + 1) % length
}

// WrapPrev returns the circular predecessor of index:
// (index-1+length) mod length. Returns 0 for empty sequences.
func WrapPrev(index, length int) int {
	if length <= 0 {
		return 0
	}
	return (index - 1 + length) % length
}

// Normalize maps an arbitrary integer into [0, length) by floored
// modulo. Out-of-range open requests wrap rather than clamp, keeping
// open consistent with the wrap-always navigation policy. Returns 0
// for empty sequences.
func Normalize(index, length int) int {
	if length <= 0 {
		return 0
	}
	remainder := index % length
	if remainder < 0 {
		remainder += length
	}
	return remainder
}
