// Package grid holds the fixed-size playfield: a 10x20 matrix of cells with the
// collision, merge and row-clearing operations the engine builds on. It has no
// notion of time or randomness.
package grid

import (
	"image/color"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/piece"
)

const (
	Cols = 10
	Rows = 20
)

// Cell is one square of the playfield. Color is only meaningful when Filled.
type Cell struct {
	Filled bool
	Color  color.RGBA
}

// Grid is a value type: assigning or returning it copies every cell, so a copy
// handed to an observer can never be changed by later engine mutations.
type Grid struct {
	cells [Rows][Cols]Cell
}

// New returns an empty grid.
func New() Grid {
	return Grid{}
}

// At returns the cell at (x, y). Off-board coordinates yield an empty cell.
func (g *Grid) At(x, y int) Cell {
	if !inside(x, y) {
		return Cell{}
	}
	return g.cells[y][x]
}

// Filled reports whether the on-board cell at (x, y) is filled.
func (g *Grid) Filled(x, y int) bool {
	return inside(x, y) && g.cells[y][x].Filled
}

// Set overwrites a single on-board cell. Off-board writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if inside(x, y) {
		g.cells[y][x] = c
	}
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) [Cols]Cell {
	if y < 0 || y >= Rows {
		return [Cols]Cell{}
	}
	return g.cells[y]
}

// FilledCount returns the number of filled cells on the board.
func (g *Grid) FilledCount() int {
	n := 0
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x].Filled {
				n++
			}
		}
	}
	return n
}

// IsValid reports whether every occupied cell of p lies within the side walls,
// above the floor, and on an unfilled cell. Cells above row 0 are never
// collision-checked so pieces may spawn partly off the top.
func (g *Grid) IsValid(p piece.Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Cols || c.Y >= Rows {
			return false
		}
		if c.Y >= 0 && g.cells[c.Y][c.X].Filled {
			return false
		}
	}
	return true
}

// Merge paints every on-board cell of p with its shape colour. Cells above the
// board are silently dropped.
func (g *Grid) Merge(p piece.Piece) {
	col := p.Shape.Color()
	for _, c := range p.Cells() {
		if inside(c.X, c.Y) {
			g.cells[c.Y][c.X] = Cell{Filled: true, Color: col}
		}
	}
}

// FullRows returns the indices of completely filled rows, bottom to top.
func (g *Grid) FullRows() []int {
	var rows []int
	for y := Rows - 1; y >= 0; y-- {
		if g.rowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

func (g *Grid) rowFull(y int) bool {
	for x := range Cols {
		if !g.cells[y][x].Filled {
			return false
		}
	}
	return true
}

// RemoveRows deletes the given rows, shifts the remaining rows down keeping
// their order, and fills the top with empty rows. Duplicates and out-of-range
// indices are ignored.
func (g *Grid) RemoveRows(rows []int) {
	if len(rows) == 0 {
		return
	}

	drop := intmap.NewSet[int](len(rows))
	for _, y := range rows {
		if y >= 0 && y < Rows {
			drop.Add(y)
		}
	}
	if drop.Len() == 0 {
		return
	}

	var compacted [Rows][Cols]Cell
	dst := Rows - 1
	for y := Rows - 1; y >= 0; y-- {
		if drop.Has(y) {
			continue
		}
		compacted[dst] = g.cells[y]
		dst--
	}
	g.cells = compacted
}

func inside(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}
