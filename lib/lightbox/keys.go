// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package lightbox

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings active while the viewer is open.
type KeyMap struct {
	Close          key.Binding
	Next           key.Binding
	Prev           key.Binding
	CycleFocus     key.Binding
	CycleFocusBack key.Binding
	Activate       key.Binding
}

// DefaultKeyMap returns the standard viewer bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "close"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next image"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous image"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle controls"),
		),
		CycleFocusBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "cycle controls back"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate control"),
		),
	}
}

// ShortHelp returns the binding summary for the status bar.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Prev, keys.Next, keys.CycleFocus, keys.Close}
}
