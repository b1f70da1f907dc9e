// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"sort"
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult is the outcome of matching a pattern against a text.
// Score is zero when the pattern does not match; Positions holds the
// rune indices of matched characters for highlight rendering, in
// ascending order.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// FuzzyMatch runs fzf's V2 matcher against a single text. Matching is
// case-insensitive: both sides are lowercased before scoring, so the
// returned positions index into the original text unchanged (ToLower
// is rune-for-rune for the inputs we care about).
//
// The slab is fzf's scratch allocation arena; callers matching many
// texts in a loop should allocate one with util.MakeSlab and reuse it.
// A nil slab is accepted and simply allocates per call.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 || text == "" {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for index, character := range pattern {
		lowered[index] = unicode.ToLower(character)
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
		sort.Ints(matched)
	}

	return FuzzyResult{Score: result.Score, Positions: matched}
}
