// Copyright 2026 The Lumen Authors
// SPDX-License-Identifier: Apache-2.0

package frame

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

// halfBlock is the upper-half-block character. Its foreground paints
// the top pixel of a cell and its background paints the bottom pixel,
// giving two image rows per terminal row.
const halfBlock = "▀"

// Frame is a rendered image ready for terminal display. Lines carry
// ANSI styling; Width and Height are in terminal cells.
type Frame struct {
	Lines  []string `cbor:"lines"`
	Width  int      `cbor:"width"`
	Height int      `cbor:"height"`
}

// Render scales an image to fit within maxColumns x maxRows terminal
// cells, preserving aspect ratio, and renders it as half-block lines.
// A terminal cell is treated as one pixel wide and two pixels tall.
func Render(source image.Image, maxColumns, maxRows int) (Frame, error) {
	if maxColumns < 1 || maxRows < 1 {
		return Frame{}, fmt.Errorf("render area %dx%d is too small", maxColumns, maxRows)
	}

	bounds := source.Bounds()
	sourceWidth := bounds.Dx()
	sourceHeight := bounds.Dy()
	if sourceWidth == 0 || sourceHeight == 0 {
		return Frame{}, fmt.Errorf("image has empty bounds")
	}

	targetWidth, targetHeight := fitPixels(sourceWidth, sourceHeight, maxColumns, maxRows*2)

	scaled := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), source, bounds, draw.Src, nil)

	rows := (targetHeight + 1) / 2
	lines := make([]string, 0, rows)
	var builder strings.Builder
	for row := 0; row < rows; row++ {
		builder.Reset()
		for column := 0; column < targetWidth; column++ {
			topColor := cellColor(scaled, column, row*2)
			style := lipgloss.NewStyle().Foreground(topColor)
			if row*2+1 < targetHeight {
				style = style.Background(cellColor(scaled, column, row*2+1))
			}
			builder.WriteString(style.Render(halfBlock))
		}
		lines = append(lines, builder.String())
	}

	return Frame{Lines: lines, Width: targetWidth, Height: rows}, nil
}

// fitPixels scales source dimensions to fit within the maximum pixel
// box, preserving aspect ratio. The result is always at least 1x1.
func fitPixels(sourceWidth, sourceHeight, maxWidth, maxHeight int) (int, int) {
	width := maxWidth
	height := sourceHeight * width / sourceWidth
	if height > maxHeight {
		height = maxHeight
		width = sourceWidth * height / sourceHeight
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// cellColor reads a pixel as a truecolor lipgloss color.
func cellColor(scaled *image.RGBA, x, y int) lipgloss.Color {
	pixel := scaled.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", pixel.R, pixel.G, pixel.B))
}
