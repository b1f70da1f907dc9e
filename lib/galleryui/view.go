// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package galleryui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/lumen-gallery/lumen/lib/announce"
	"github.com/lumen-gallery/lumen/lib/frame"
	"github.com/lumen-gallery/lumen/lib/gallery"
	"github.com/lumen-gallery/lumen/lib/tui"
)

// Grid cell geometry. A cell holds a thumbnail block, a name line,
// and a tag line, with a one-column gutter between cells.
const (
	cellWidth     = 26
	cellGutter    = 1
	thumbnailRows = 7
	cellHeight    = thumbnailRows + 3 // thumbnail + name + tags + gap

	headerRows = 1
	statusRows = 1
)

// gridColumns returns how many cells fit per row at the current
// width, leaving one column for the scrollbar.
func (model *Model) gridColumns() int {
	columns := (model.width - 1) / (cellWidth + cellGutter)
	if columns < 1 {
		columns = 1
	}
	return columns
}

// gridRows returns how many cell rows fit on screen.
func (model *Model) gridRows() int {
	rows := (model.height - headerRows - statusRows) / cellHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (model *Model) ensureCursorVisible() {
	if model.width == 0 {
		return
	}
	row := model.cursor / model.gridColumns()
	if row < model.scrollRow {
		model.scrollRow = row
	}
	if row >= model.scrollRow+model.gridRows() {
		model.scrollRow = row - model.gridRows() + 1
	}
	if model.scrollRow < 0 {
		model.scrollRow = 0
	}
}

// cellAt maps a screen position to a visible-item index.
func (model *Model) cellAt(x, y int) (int, bool) {
	if y < headerRows || model.width == 0 {
		return 0, false
	}
	row := (y-headerRows)/cellHeight + model.scrollRow
	column := x / (cellWidth + cellGutter)
	if column >= model.gridColumns() {
		return 0, false
	}
	index := row*model.gridColumns() + column
	if index < 0 || index >= len(model.visible) {
		return 0, false
	}
	return index, true
}

// View implements tea.Model.
func (model *Model) View() string {
	if model.width == 0 || model.height == 0 {
		return ""
	}

	var sections []string
	sections = append(sections, model.renderHeader())
	sections = append(sections, model.renderGrid())
	sections = append(sections, model.renderStatusBar())
	view := strings.Join(sections, "\n")

	if model.viewer.IsOpen() {
		dimmed := tui.DimView(view, model.theme)
		overlayLines, anchorX, anchorY := model.viewer.Render(model.width, model.height)
		return tui.SpliceOverlay(dimmed, overlayLines, anchorX, anchorY)
	}
	return view
}

// renderHeader shows the gallery title and counts, or the filter bar
// while filtering.
func (model *Model) renderHeader() string {
	if filterBar := model.filter.View(model.theme, model.width); filterBar != "" {
		return filterBar
	}

	title := model.catalog.Title
	if title == "" {
		title = "Gallery"
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	countStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	counts := fmt.Sprintf("  %d / %d images", len(model.visible), model.catalog.Len())
	header := titleStyle.Render(" "+title) + countStyle.Render(counts)
	return padToWidth(header, model.width)
}

func (model *Model) renderGrid() string {
	contentRows := model.height - headerRows - statusRows
	if contentRows < 1 {
		return ""
	}

	if len(model.visible) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(" No images match.")
		return padBlock(empty, model.width, contentRows)
	}

	columns := model.gridColumns()
	rows := model.gridRows()
	totalRows := (len(model.visible) + columns - 1) / columns

	var gridLines []string
	for row := model.scrollRow; row < model.scrollRow+rows && row < totalRows; row++ {
		cells := make([]string, 0, columns)
		for column := 0; column < columns; column++ {
			index := row*columns + column
			if index >= len(model.visible) {
				break
			}
			cells = append(cells, model.renderCell(index))
		}
		rowBlock := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		gridLines = append(gridLines, strings.Split(rowBlock, "\n")...)
	}

	grid := strings.Join(gridLines, "\n")
	grid = padBlock(grid, model.width-1, contentRows)

	scrollbar := tui.RenderScrollbar(model.theme, contentRows, totalRows, rows, model.scrollRow, model.focus == FocusGrid)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, scrollbar)
}

// renderCell builds one grid card: thumbnail, name, tag chips. The
// cursor cell gets the selection style on its name line.
func (model *Model) renderCell(index int) string {
	item := model.catalog.Items[model.visible[index]]
	innerWidth := cellWidth - 2

	var lines []string

	thumbnail := model.renderThumbnail(item, innerWidth)
	lines = append(lines, thumbnail...)

	if index == model.cursor {
		selectedStyle := lipgloss.NewStyle().
			Foreground(model.theme.SelectedForeground).
			Background(model.theme.SelectedBackground).
			Bold(true)
		lines = append(lines, selectedStyle.Render(ansi.Truncate(item.Name, innerWidth, "…")))
	} else {
		lines = append(lines, ansi.Truncate(model.highlightName(item.Name), innerWidth, "…"))
	}

	var tagParts []string
	for _, tag := range item.Tags {
		tagStyle := lipgloss.NewStyle().Foreground(model.theme.TagColor(tag))
		tagParts = append(tagParts, tagStyle.Render("#"+tag))
	}
	lines = append(lines, ansi.Truncate(strings.Join(tagParts, " "), innerWidth, "…"))
	lines = append(lines, "")

	cellStyle := lipgloss.NewStyle().
		Width(cellWidth + cellGutter).
		PaddingLeft(1)
	return cellStyle.Render(strings.Join(lines, "\n"))
}

// highlightName renders an item name with the filter's fuzzy match
// positions tinted, so a filtered grid shows why each card survived.
func (model *Model) highlightName(name string) string {
	baseStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	if model.filter.Input == "" {
		return baseStyle.Render(name)
	}

	positions := model.filter.NamePositions(name)
	if len(positions) == 0 {
		return baseStyle.Render(name)
	}
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	matchStyle := baseStyle.Background(model.theme.MatchBackground)
	var builder strings.Builder
	for position, character := range []rune(name) {
		if matched[position] {
			builder.WriteString(matchStyle.Render(string(character)))
		} else {
			builder.WriteString(baseStyle.Render(string(character)))
		}
	}
	return builder.String()
}

// renderThumbnail loads the cached thumbnail frame for an item. An
// unresolvable or undecodable image renders as an outlined empty box
// rather than breaking the grid.
func (model *Model) renderThumbnail(item gallery.Item, width int) []string {
	source := gallery.ResolveFullSource(item)
	if source != "" {
		rendered, err := frame.Load(model.cache, source, width, thumbnailRows)
		if err == nil {
			lines := make([]string, thumbnailRows)
			topPadding := (thumbnailRows - rendered.Height) / 2
			for row := range lines {
				frameRow := row - topPadding
				if frameRow >= 0 && frameRow < len(rendered.Lines) {
					lines[row] = rendered.Lines[frameRow]
				}
			}
			return lines
		}
		slog.Debug("thumbnail render failed", "image", item.Name, "error", err)
	}

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	lines := make([]string, thumbnailRows)
	for row := range lines {
		lines[row] = ""
	}
	lines[thumbnailRows/2] = faint.Render("(no preview)")
	return lines
}

func (model *Model) renderStatusBar() string {
	theme := model.theme

	if model.logSummary != "" {
		style := lipgloss.NewStyle().Foreground(theme.AnnounceInfo)
		if model.logLevel >= slog.LevelError {
			style = lipgloss.NewStyle().Foreground(theme.AnnounceAlert).Bold(true)
		}
		return padToWidth(style.Render(" "+model.logSummary), model.width)
	}

	if text, politeness := model.announcer.Current(); text != "" {
		style := lipgloss.NewStyle().Foreground(theme.AnnounceInfo)
		if politeness == announce.Alert {
			style = lipgloss.NewStyle().Foreground(theme.AnnounceAlert).Bold(true)
		}
		return padToWidth(style.Render(" "+text), model.width)
	}

	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)
	var parts []string
	for _, binding := range model.keys.HelpBindings() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	line := " " + strings.Join(parts, "  ")

	// With a filter in effect the right edge shows how much of the
	// catalog survived it.
	if model.filter.Input != "" {
		count := fmt.Sprintf("%d / %d shown ", len(model.visible), len(model.catalog.Items))
		gap := model.width - ansi.StringWidth(line) - ansi.StringWidth(count)
		if gap > 0 {
			return helpStyle.Render(line) + strings.Repeat(" ", gap) + helpStyle.Render(count)
		}
	}
	return padToWidth(helpStyle.Render(line), model.width)
}

func padToWidth(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth >= width {
		return ansi.Truncate(line, width, "")
	}
	return line + strings.Repeat(" ", width-lineWidth)
}

// padBlock pads a multi-line block to exactly the given width and
// height.
func padBlock(block string, width, height int) string {
	lines := strings.Split(block, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]
	for index, line := range lines {
		lines[index] = padToWidth(line, width)
	}
	return strings.Join(lines, "\n")
}
