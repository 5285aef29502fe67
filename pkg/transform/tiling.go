package transform

import (
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/NotSooShariff/adversarial-vision/pkg/render"
)

const (
	// estimatedCharWidth is the average glyph advance as a fraction of the font
	// size. It is a monospace approximation applied to every font.
	estimatedCharWidth = 0.6

	minHorizontalGap = 1.2
	minVerticalGap   = 1.8
	minTileWidth     = 2.0

	tilingFontFamily = "Arial"
)

var tilingTextColor = color.NRGBA{A: 255}

// TileGrid is the layout of repeated text over a tiled area.
type TileGrid struct {
	EstimatedTextWidth float64

	SpacingX float64
	SpacingY float64
	Columns  int
	Rows     int
}

// NewTileGrid spaces copies of text about width/density apart horizontally
// and height/density vertically, but never closer than the estimated text
// width (times 1.2, and at least twice the font size) or 1.8 times the font
// size.
func NewTileGrid(text string, fontSize, density, width, height float64) TileGrid {
	estimatedWidth := float64(utf8.RuneCountInString(text)) * fontSize * estimatedCharWidth

	minSpacingX := math.Max(estimatedWidth*minHorizontalGap, fontSize*minTileWidth)
	grid := TileGrid{
		EstimatedTextWidth: estimatedWidth,
		SpacingX:           math.Max(minSpacingX, width/density),
		SpacingY:           math.Max(fontSize*minVerticalGap, height/density),
	}
	if grid.SpacingX > 0 {
		grid.Columns = int(math.Floor(width / grid.SpacingX))
	}
	if grid.SpacingY > 0 {
		grid.Rows = int(math.Floor(height / grid.SpacingY))
	}
	return grid
}

// Anchors returns the baseline origin of every tile, row by row. Each tile's
// top edge sits on the grid, so the baseline is one font size below it.
func (g TileGrid) Anchors(fontSize float64) []render.Point {
	anchors := make([]render.Point, 0, g.Columns*g.Rows)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			anchors = append(anchors, render.Point{
				X: float64(col) * g.SpacingX,
				Y: float64(row)*g.SpacingY + fontSize,
			})
		}
	}
	return anchors
}
