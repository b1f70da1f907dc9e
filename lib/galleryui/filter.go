// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/tui"
)

// FilterModel narrows the gallery to items matching a query. A query
// is split on spaces into terms: a term starting with "#" must match
// one of the item's tags exactly (case-insensitive), every other term
// fuzzy-matches against the item's name, caption, and tags. All terms
// must match for an item to stay visible.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus.
	Active bool

	// slab is reused across fuzzy matching calls.
	slab *util.Slab
}

// NewFilterModel creates an empty, inactive filter.
func NewFilterModel() FilterModel {
	return FilterModel{slab: util.MakeSlab(100*1024, 2048)}
}

// MatchesItem reports whether an item passes the current filter. The
// query splits into whitespace-separated terms that must all match.
// A "#tag" term requires that exact tag (case-insensitive); any other
// term fuzzy-matches the item name, caption first line, or tags. An
// empty query matches everything.
func (filter *FilterModel) MatchesItem(item gallery.Item) bool {
	for _, term := range strings.Fields(filter.Input) {
		if tag, ok := strings.CutPrefix(term, "#"); ok {
			if !matchesTag(item, tag) {
				return false
			}
			continue
		}

		pattern := []rune(term)
		if tui.FuzzyMatch(item.Name, pattern, filter.slab).Score > 0 {
			continue
		}
		if tui.FuzzyMatch(gallery.CaptionFirstLine(item.Caption), pattern, filter.slab).Score > 0 {
			continue
		}
		matched := false
		for _, tag := range item.Tags {
			if tui.FuzzyMatch(tag, pattern, filter.slab).Score > 0 {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// NamePositions returns the rune positions in an item name matched by
// the query's fuzzy terms, ascending and deduplicated, for highlight
// rendering in the grid. Tag terms and terms that only match through
// the caption or tags contribute no positions.
func (filter *FilterModel) NamePositions(name string) []int {
	seen := make(map[int]bool)
	var positions []int
	for _, term := range strings.Fields(filter.Input) {
		if strings.HasPrefix(term, "#") {
			continue
		}
		result := tui.FuzzyMatch(name, []rune(term), filter.slab)
		for _, position := range result.Positions {
			if !seen[position] {
				seen[position] = true
				positions = append(positions, position)
			}
		}
	}
	sort.Ints(positions)
	return positions
}

func matchesTag(item gallery.Item, tag string) bool {
	for _, candidate := range item.Tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}

// Apply returns the catalog indices of items that pass the filter,
// in catalog order. The indices are what the grid displays and what
// an open request maps back through.
func (filter *FilterModel) Apply(items []gallery.Item) []int {
	visible := make([]int, 0, len(items))
	for index, item := range items {
		if filter.MatchesItem(item) {
			visible = append(visible, index)
		}
	}
	return visible
}

// HandleRune appends a typed character to the query.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character from the query. Returns
// false when there was nothing to remove.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the query and deactivates the filter.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. Active shows the query with a cursor;
// inactive with text shows a subtle indicator; inactive and empty is
// hidden.
func (filter *FilterModel) View(theme tui.Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}
