package spectate

import (
	"fmt"
	"image/color"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
)

// Frame is the JSON form of a snapshot sent to viewers.
type Frame struct {
	Phase    string                       `json:"phase"`
	Score    int                          `json:"score"`
	Level    int                          `json:"level"`
	Lines    int                          `json:"lines"`
	Board    [grid.Rows][grid.Cols]string `json:"board"`
	Current  *PieceFrame                  `json:"current,omitempty"`
	Ghost    *PieceFrame                  `json:"ghost,omitempty"`
	Next     string                       `json:"next,omitempty"`
	Bag      []string                     `json:"bag"`
	Clearing []int                        `json:"clearing,omitempty"`
}

// PieceFrame is a piece with its occupied board cells resolved.
type PieceFrame struct {
	Shape    string   `json:"shape"`
	Rotation int      `json:"rotation"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Cells    [][2]int `json:"cells"`
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func pieceFrame(p piece.Piece) *PieceFrame {
	cells := p.Cells()
	out := &PieceFrame{
		Shape:    p.Shape.String(),
		Rotation: p.Rotation,
		X:        p.X,
		Y:        p.Y,
		Cells:    make([][2]int, len(cells)),
	}
	for i, c := range cells {
		out.Cells[i] = [2]int{c.X, c.Y}
	}
	return out
}

// FrameFrom converts a snapshot. Empty cells are "", filled cells carry their
// colour as #rrggbb.
func FrameFrom(s engine.State) Frame {
	f := Frame{
		Phase:    s.Phase().String(),
		Score:    s.Score,
		Level:    s.Level,
		Lines:    s.Lines,
		Bag:      make([]string, len(s.Bag)),
		Clearing: s.ClearingRows,
	}
	for y := range grid.Rows {
		for x := range grid.Cols {
			if c := s.Grid.At(x, y); c.Filled {
				f.Board[y][x] = hex(c.Color)
			}
		}
	}
	if s.Current != nil {
		f.Current = pieceFrame(*s.Current)
		if ghost, ok := s.Ghost(); ok {
			f.Ghost = pieceFrame(ghost)
		}
	}
	if s.Next != nil {
		f.Next = s.Next.Shape.String()
	}
	for i, shape := range s.Bag {
		f.Bag[i] = shape.String()
	}
	return f
}
