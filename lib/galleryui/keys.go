// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the gallery grid. The viewer
// has its own bindings that take over while it is open.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Open opens the viewer on the selected card.
	Open key.Binding

	// Filter.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter and exit filter mode.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style movement
// (h/j/k/l) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "first"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "last"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "view"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// HelpBindings returns the bindings shown in the status bar help
// line, in display order.
func (keys KeyMap) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Up, keys.Down, keys.Open, keys.FilterActivate, keys.Quit,
	}
}

// KeyNames returns the help-label/action pairs for every binding.
// The documentation checker compares this registry against the table
// in docs/keys.md.
func (keys KeyMap) KeyNames() map[string]string {
	bindings := []key.Binding{
		keys.Up, keys.Down, keys.Left, keys.Right, keys.Home, keys.End,
		keys.Open, keys.FilterActivate, keys.FilterClear, keys.Quit,
	}
	names := make(map[string]string, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		names[help.Key] = help.Desc
	}
	return names
}
