package spectate

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/theme"
)

// RenderPNG draws the board of s, cell pixels per cell, and writes it as PNG.
func RenderPNG(w io.Writer, s engine.State, palette theme.Palette, cell int) error {
	if cell < 1 {
		return fmt.Errorf("cell size must be positive, got %d", cell)
	}
	dc := Render(s, palette, cell)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	return nil
}

// Render draws the board of s into a new context.
func Render(s engine.State, palette theme.Palette, cell int) *gg.Context {
	size := float64(cell)
	dc := gg.NewContext(grid.Cols*cell, grid.Rows*cell)

	dc.SetColor(palette.Background)
	dc.Clear()
	dc.SetColor(palette.Board)
	dc.DrawRectangle(0, 0, float64(grid.Cols)*size, float64(grid.Rows)*size)
	dc.Fill()

	dc.SetColor(palette.GridLine)
	dc.SetLineWidth(1)
	for x := 1; x < grid.Cols; x++ {
		dc.DrawLine(float64(x)*size, 0, float64(x)*size, float64(grid.Rows)*size)
	}
	for y := 1; y < grid.Rows; y++ {
		dc.DrawLine(0, float64(y)*size, float64(grid.Cols)*size, float64(y)*size)
	}
	dc.Stroke()

	for y := range grid.Rows {
		flashing := s.Clearing(y)
		for x := range grid.Cols {
			c := s.Grid.At(x, y)
			switch {
			case flashing:
				drawCell(dc, x, y, size, palette.Flash)
			case c.Filled:
				drawCell(dc, x, y, size, palette.Cell(c.Color))
			}
		}
	}

	if ghost, ok := s.Ghost(); ok {
		for _, p := range ghost.Cells() {
			drawCell(dc, p.X, p.Y, size, palette.Ghost)
		}
	}
	if s.Current != nil {
		fill := palette.Piece(s.Current.Shape)
		for _, p := range s.Current.Cells() {
			drawCell(dc, p.X, p.Y, size, fill)
		}
	}

	for _, p := range s.Particles {
		c := p.Color
		c.A = uint8(255 * max(0, min(1, p.Life)))
		dc.SetColor(color.NRGBA{c.R, c.G, c.B, c.A})
		dc.DrawCircle(p.X*size, p.Y*size, p.Size*size/2)
		dc.Fill()
	}
	return dc
}

func drawCell(dc *gg.Context, x, y int, size float64, c color.Color) {
	if x < 0 || x >= grid.Cols || y < 0 || y >= grid.Rows {
		return
	}
	dc.SetColor(c)
	dc.DrawRectangle(float64(x)*size+1, float64(y)*size+1, size-2, size-2)
	dc.Fill()
}
