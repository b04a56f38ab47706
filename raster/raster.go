// Package raster draws a laid out grid onto a pixel canvas: one bordered
// rectangle per cell or merge region, with the cell text wrapped and centered
// inside it.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/aerissecure/gridimage/grid"
	"github.com/aerissecure/gridimage/layout"
)

// Face measures and draws text. *fonts.Face satisfies it.
type Face interface {
	layout.Measurer
	FontFace() font.Face
}

// Config controls the canvas geometry and ink.
type Config struct {
	CellWidth  int
	Background color.Color // white if nil
	Foreground color.Color // black if nil; used for borders and text
}

// Render draws g with the given row heights and returns the finished bitmap.
// The canvas is NumColumns*CellWidth wide and sum(heights) tall.
func Render(g *grid.Grid, idx *grid.Index, heights []int, face Face, cfg Config) (image.Image, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if len(heights) != g.NumRows() {
		return nil, &grid.LayoutError{Op: "render",
			Reason: fmt.Sprintf("%d row heights for %d rows", len(heights), g.NumRows())}
	}
	if cfg.CellWidth <= 0 {
		return nil, &grid.LayoutError{Op: "render", Reason: fmt.Sprintf("cell width %d", cfg.CellWidth)}
	}

	width := g.NumColumns() * cfg.CellWidth
	height := layout.Total(heights, 0, len(heights)-1)
	if height <= 0 {
		return nil, &grid.LayoutError{Op: "render", Reason: "rows have no height"}
	}

	bg, fg := cfg.Background, cfg.Foreground
	if bg == nil {
		bg = color.White
	}
	if fg == nil {
		fg = color.Black
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()
	dc.SetColor(fg)
	dc.SetLineWidth(1)
	dc.SetFontFace(face.FontFace())

	c := &canvas{dc: dc, face: face, width: width, height: height}
	y := 0
	for row := 0; row < g.NumRows(); row++ {
		for col := 0; col < g.NumColumns(); col++ {
			x := col * cfg.CellWidth
			region, merged := idx.RegionAt(row, col)
			switch {
			case !merged:
				c.cell(x, y, cfg.CellWidth, heights[row], g.Text(row, col))
			case region.IsAnchor(row, col):
				h := layout.Total(heights, region.FirstRow, region.LastRow)
				c.cell(x, y, cfg.CellWidth, h, g.Text(row, col))
			}
		}
		y += heights[row]
	}
	return dc.Image(), nil
}

type canvas struct {
	dc            *gg.Context
	face          Face
	width, height int
}

func (c *canvas) cell(x, y, w, h int, text string) {
	c.border(x, y, w, h)
	c.centered(text, x, y, w, h)
}

// border strokes the pixel outline from (x, y) to (x+w, y+h). Shared edges of
// neighbouring cells land on the same pixels; edges past the canvas are pulled
// back onto its last row or column.
func (c *canvas) border(x, y, w, h int) {
	right := min(x+w, c.width-1)
	bottom := min(y+h, c.height-1)
	c.dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, float64(right-x), float64(bottom-y))
	c.dc.Stroke()
}

func (c *canvas) centered(text string, x, y, w, h int) {
	lines := layout.Wrap(text, w, c.face)
	if len(lines) == 0 {
		return
	}
	lineHeight := c.face.LineHeight()
	baseline := y + (h-lineHeight*len(lines))/2 + c.face.Ascent()
	for _, line := range lines {
		lx := x + (w-c.face.Measure(line))/2
		c.dc.DrawString(line, float64(lx), float64(baseline))
		baseline += lineHeight
	}
}
