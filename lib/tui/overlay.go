// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content, line by line, starting at (anchorX, anchorY) in
// screen coordinates. Truncation is ANSI-aware so escape sequences in
// the underlying view survive on both sides of the overlay.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for offset, overlayLine := range overlayLines {
		row := anchorY + offset
		if row < 0 || row >= len(viewLines) {
			continue
		}
		viewLines[row] = spliceLine(viewLines[row], overlayLine, anchorX, overlayWidth)
	}

	return strings.Join(viewLines, "\n")
}

// spliceLine rebuilds one view line as prefix + overlay + suffix.
// SGR resets bracket the overlay so styles from the underlying line
// never bleed into the overlay content and vice versa.
func spliceLine(viewLine, overlayLine string, anchorX, overlayWidth int) string {
	var rebuilt strings.Builder

	if anchorX > 0 {
		rebuilt.WriteString(ansi.Truncate(viewLine, anchorX, ""))
	}
	rebuilt.WriteString("\x1b[0m")
	rebuilt.WriteString(overlayLine)
	rebuilt.WriteString("\x1b[0m")

	suffixStart := anchorX + overlayWidth
	if suffixStart < ansi.StringWidth(viewLine) {
		rebuilt.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
	}

	return rebuilt.String()
}

// DimView strips all styling from a rendered view and re-renders it
// in the theme's backdrop color. Applied to the gallery while the
// lightbox is open, so the modal reads as the only active surface.
// The geometry of the view is preserved exactly: same line count,
// same visible widths.
func DimView(view string, theme Theme) string {
	dimStyle := lipgloss.NewStyle().Foreground(theme.BackdropDim)
	lines := strings.Split(view, "\n")
	for index, line := range lines {
		lines[index] = dimStyle.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}

// CenterAnchor computes the top-left anchor that centers a box of the
// given size on the screen. Anchors are clamped at zero so oversized
// boxes pin to the top-left rather than going negative.
func CenterAnchor(screenWidth, screenHeight, boxWidth, boxHeight int) (anchorX, anchorY int) {
	anchorX = (screenWidth - boxWidth) / 2
	anchorY = (screenHeight - boxHeight) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	if anchorY < 0 {
		anchorY = 0
	}
	return anchorX, anchorY
}
