// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package lightbox

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lumen-gallery/lumen/lib/tui"
)

// Modal chrome overhead: 2 columns border + 2 columns padding
// horizontal; 2 lines border + 1 title + 1 footer vertical. The
// caption strip sits between the image and the footer.
const (
	modalChromeWidth  = 4
	modalChromeHeight = 4
	modalMargin       = 2
	modalMinWidth     = 24
	modalMinHeight    = 10
	captionRows       = 2
)

// rect is a hit rectangle in screen coordinates.
type rect struct {
	x, y          int
	width, height int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.width && y >= r.y && y < r.y+r.height
}

// layout is the hit geometry of a render: the modal frame and each
// control's footer rectangle.
type layout struct {
	frame    rect
	controls [controlCount]rect
}

// controlLabel returns the footer text for a control.
func controlLabel(control Control) string {
	switch control {
	case ControlClose:
		return "Close"
	case ControlPrev:
		return "‹ Prev"
	case ControlNext:
		return "Next ›"
	}
	return ""
}

// modalSize computes the outer modal dimensions for a screen,
// following the fill-minus-margin rule with a floor.
func modalSize(screenWidth, screenHeight int) (int, int) {
	width := screenWidth - modalMargin*2
	height := screenHeight - modalMargin*2
	if width < modalMinWidth {
		width = modalMinWidth
	}
	if height < modalMinHeight {
		height = modalMinHeight
	}
	if width > screenWidth {
		width = screenWidth
	}
	if height > screenHeight {
		height = screenHeight
	}
	return width, height
}

// imageArea returns the columns and rows available for the image at
// the current screen size. Zero when the screen size is unknown.
func (controller *Controller) imageArea() (int, int) {
	if controller.screenWidth < 1 || controller.screenHeight < 1 {
		return 0, 0
	}
	modalWidth, modalHeight := modalSize(controller.screenWidth, controller.screenHeight)
	columns := modalWidth - modalChromeWidth
	rows := modalHeight - modalChromeHeight - captionRows
	if columns < 1 {
		columns = 1
	}
	if rows < 1 {
		rows = 1
	}
	return columns, rows
}

// Render produces the modal overlay lines for splicing onto the
// dimmed gallery view, plus the anchor position of the top-left
// corner. It also records the hit geometry consumed by HandleMouse.
func (controller *Controller) Render(screenWidth, screenHeight int) ([]string, int, int) {
	controller.screenWidth = screenWidth
	controller.screenHeight = screenHeight

	modalWidth, _ := modalSize(screenWidth, screenHeight)
	innerWidth := modalWidth - modalChromeWidth
	_, imageRows := controller.imageArea()

	theme := controller.theme
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.HeaderForeground)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	counterStyle := lipgloss.NewStyle().Foreground(theme.CounterForeground)
	controlStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	focusedStyle := lipgloss.NewStyle().
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Bold(true)

	var contentLines []string

	// Title: the active item's name.
	title := ""
	if controller.index < len(controller.items) {
		title = controller.items[controller.index].Name
	}
	contentLines = append(contentLines, padLine(titleStyle.Render(ansi.Truncate(title, innerWidth, "…")), innerWidth))

	// Image block, centered horizontally and padded vertically.
	frameLines := controller.lastFrame.Lines
	topPadding := (imageRows - len(frameLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	for row := 0; row < imageRows; row++ {
		frameRow := row - topPadding
		if frameRow < 0 || frameRow >= len(frameLines) {
			contentLines = append(contentLines, strings.Repeat(" ", innerWidth))
			continue
		}
		line := frameLines[frameRow]
		leftPadding := (innerWidth - controller.lastFrame.Width) / 2
		if leftPadding < 0 {
			leftPadding = 0
		}
		padded := strings.Repeat(" ", leftPadding) + ansi.Truncate(line, innerWidth, "")
		contentLines = append(contentLines, padLine(padded, innerWidth))
	}

	// Caption strip: rendered markdown, clipped to its reserved rows.
	captionLines := []string{}
	if controller.lastCaption != "" {
		captionLines = strings.Split(tui.RenderMarkdown(controller.lastCaption, theme, innerWidth), "\n")
	}
	for row := 0; row < captionRows; row++ {
		if row < len(captionLines) {
			contentLines = append(contentLines, padLine(ansi.Truncate(captionLines[row], innerWidth, "…"), innerWidth))
		} else {
			contentLines = append(contentLines, strings.Repeat(" ", innerWidth))
		}
	}

	// Footer: counter on the left, controls on the right, tracking
	// column offsets for mouse hit rectangles.
	footer := counterStyle.Render(controller.counter)
	footerOffset := ansi.StringWidth(controller.counter)

	separator := "   "
	controlOrder := []Control{ControlPrev, ControlClose, ControlNext}
	controlOffsets := make(map[Control]int, len(controlOrder))
	controlWidths := make(map[Control]int, len(controlOrder))
	for _, control := range controlOrder {
		footer += faintStyle.Render(separator)
		footerOffset += len(separator)

		label := controlLabel(control)
		labelWidth := ansi.StringWidth(label)
		controlOffsets[control] = footerOffset
		controlWidths[control] = labelWidth
		if controller.Focused() == control {
			footer += focusedStyle.Render(label)
		} else {
			footer += controlStyle.Render(label)
		}
		footerOffset += labelWidth
	}
	contentLines = append(contentLines, padLine(footer, innerWidth))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.FrameBorder).
		Background(theme.FrameBackground).
		Padding(0, 1)

	rendered := borderStyle.Render(strings.Join(contentLines, "\n"))
	resultLines := strings.Split(rendered, "\n")

	renderedWidth := 0
	if len(resultLines) > 0 {
		renderedWidth = ansi.StringWidth(resultLines[0])
	}
	anchorX, anchorY := tui.CenterAnchor(screenWidth, screenHeight, renderedWidth, len(resultLines))

	controller.layout = layout{
		frame: rect{x: anchorX, y: anchorY, width: renderedWidth, height: len(resultLines)},
	}
	// The footer is the last content line inside the bottom border;
	// content columns start after the left border and padding.
	footerY := anchorY + len(resultLines) - 2
	contentX := anchorX + 2
	for _, control := range controlOrder {
		controller.layout.controls[control] = rect{
			x:      contentX + controlOffsets[control],
			y:      footerY,
			width:  controlWidths[control],
			height: 1,
		}
	}

	return resultLines, anchorX, anchorY
}

// padLine pads a styled line with spaces to the given display width.
func padLine(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth >= width {
		return line
	}
	return line + strings.Repeat(" ", width-lineWidth)
}
