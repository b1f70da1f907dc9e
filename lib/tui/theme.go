// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for Lumen's terminal UI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover universal chrome (text, selection, borders) plus
// the gallery-specific surfaces: tag accents, the lightbox frame, and
// the announcement line.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected gallery row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Accent for the focused control and the scrollbar thumb.
	AccentColor lipgloss.Color

	// Tag accents. A tag's color is chosen by hashing its name into
	// this palette, so the same tag is always the same color within
	// a session regardless of which items carry it.
	TagPalette [6]lipgloss.Color

	// Backdrop treatment while the lightbox is open: the background
	// view is re-rendered in this foreground color so the modal
	// reads as the only active surface.
	BackdropDim lipgloss.Color

	// Lightbox frame chrome.
	FrameBorder       lipgloss.Color
	FrameBackground   lipgloss.Color
	CounterForeground lipgloss.Color

	// Announcement line (status bar) levels.
	AnnounceInfo  lipgloss.Color
	AnnounceAlert lipgloss.Color

	// Background tint for filter match positions.
	MatchBackground lipgloss.Color
}

// TagColor returns the palette color for a tag name. The same name
// always maps to the same color.
func (theme Theme) TagColor(tag string) lipgloss.Color {
	hasher := fnv.New32a()
	hasher.Write([]byte(tag))
	return theme.TagPalette[int(hasher.Sum32())%len(theme.TagPalette)]
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	AccentColor: lipgloss.Color("220"), // amber

	TagPalette: [6]lipgloss.Color{
		lipgloss.Color("114"), // green
		lipgloss.Color("75"),  // blue
		lipgloss.Color("141"), // light purple
		lipgloss.Color("208"), // orange
		lipgloss.Color("80"),  // teal
		lipgloss.Color("176"), // pink
	},

	BackdropDim: lipgloss.Color("238"),

	FrameBorder:       lipgloss.Color("240"),
	FrameBackground:   lipgloss.Color("235"),
	CounterForeground: lipgloss.Color("250"),

	AnnounceInfo:  lipgloss.Color("250"),
	AnnounceAlert: lipgloss.Color("196"), // red

	MatchBackground: lipgloss.Color("58"), // dark amber
}
