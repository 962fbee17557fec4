// Package piece defines the seven tetromino shapes, the immutable Piece value
// that positions a shape on the board, and the 7-bag randomizer that deals them.
package piece

import (
	"fmt"
	"image/color"
)

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	O
	T
	S
	Z
	J
	L
)

// Shapes lists every shape in canonical order.
var Shapes = [...]Shape{I, O, T, S, Z, J, L}

var shapeNames = [...]string{"I", "O", "T", "S", "Z", "J", "L"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", uint8(s))
}

// ParseShape converts a single letter into a Shape.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

var shapeColors = [...]color.RGBA{
	I: {0x00, 0xf0, 0xf0, 0xff},
	O: {0xf0, 0xf0, 0x00, 0xff},
	T: {0xa0, 0x00, 0xf0, 0xff},
	S: {0x00, 0xf0, 0x00, 0xff},
	Z: {0xf0, 0x00, 0x00, 0xff},
	J: {0x00, 0x00, 0xf0, 0xff},
	L: {0xf0, 0xa0, 0x00, 0xff},
}

// Color returns the fixed colour a locked cell of this shape is painted with.
func (s Shape) Color() color.RGBA {
	if int(s) < len(shapeColors) {
		return shapeColors[s]
	}
	return color.RGBA{0x88, 0x88, 0x88, 0xff}
}

var baseMatrices = [...][][]bool{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
}

// rotations[shape][rotation] is precomputed once; Cells stays allocation-light.
var rotations [len(baseMatrices)][4][][]bool

func init() {
	for s, base := range baseMatrices {
		m := base
		for r := 0; r < 4; r++ {
			rotations[s][r] = m
			m = rotateClockwise(m)
		}
	}
}

func rotateClockwise(m [][]bool) [][]bool {
	rows := len(m)
	cols := len(m[0])
	rotated := make([][]bool, cols)
	for c := range cols {
		rotated[c] = make([]bool, rows)
		for r := range rows {
			rotated[c][rows-1-r] = m[r][c]
		}
	}
	return rotated
}

// Point is a cell coordinate on the board. Y grows downward; negative Y is above
// the visible area.
type Point struct {
	X, Y int
}

// Piece is an immutable tetromino placement. Every transformation returns a new
// value; the receiver is never modified.
type Piece struct {
	Shape    Shape
	Rotation int
	X, Y     int
}

// New returns a piece of the given shape in its spawn rotation at (x, y).
func New(shape Shape, x, y int) Piece {
	return Piece{Shape: shape, X: x, Y: y}
}

// Matrix returns the occupancy matrix for the piece's shape and rotation. The
// returned slices are shared and must not be modified.
func (p Piece) Matrix() [][]bool {
	return rotations[p.Shape][p.Rotation&3]
}

// Bounds returns the width and height of the rotated bounding box.
func (p Piece) Bounds() (w, h int) {
	m := p.Matrix()
	return len(m[0]), len(m)
}

// Cells returns the board coordinates the piece occupies, in row-major order.
func (p Piece) Cells() []Point {
	m := p.Matrix()
	cells := make([]Point, 0, 4)
	for row := range m {
		for col, filled := range m[row] {
			if filled {
				cells = append(cells, Point{X: p.X + col, Y: p.Y + row})
			}
		}
	}
	return cells
}

// Rotate returns the piece turned 90 degrees clockwise. Validity is the caller's
// concern; no wall kicks are attempted.
func (p Piece) Rotate() Piece {
	p.Rotation = (p.Rotation + 1) % 4
	return p
}

// Offset returns the piece translated by (dx, dy).
func (p Piece) Offset(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// At returns the piece re-anchored at (x, y) keeping shape and rotation.
func (p Piece) At(x, y int) Piece {
	p.X = x
	p.Y = y
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s/r%d@(%d,%d)", p.Shape, p.Rotation, p.X, p.Y)
}
