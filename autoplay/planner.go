// Package autoplay is a greedy bot: it scores every reachable placement of the
// falling piece with a weighted board heuristic and plays the best one.
package autoplay

import (
	"math"

	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/session"
)

// Weights scale each board feature. Positive terms are rewarded.
type Weights struct {
	Height    float64
	Lines     float64
	Holes     float64
	Bumpiness float64
}

var DefaultWeights = Weights{
	Height:    -0.510066,
	Lines:     0.760666,
	Holes:     -0.35663,
	Bumpiness: -0.184483,
}

// Placement is a target rotation and column for the falling piece.
type Placement struct {
	Rotation int
	X        int
	Score    float64
}

// Best returns the highest scoring placement of p on g. It reports false when
// p fits nowhere.
func Best(g grid.Grid, p piece.Piece, w Weights) (Placement, bool) {
	best := Placement{Score: math.Inf(-1)}
	found := false

	for r := range 4 {
		rotated := p
		rotated.Rotation = (p.Rotation + r) % 4
		// Leading matrix columns may be empty, so anchors start left of the wall.
		width, _ := rotated.Bounds()
		for x := 1 - width; x < grid.Cols; x++ {
			candidate := rotated.At(x, p.Y)
			if !g.IsValid(candidate) {
				continue
			}
			score := Evaluate(g, drop(&g, candidate), w)
			if score > best.Score {
				best = Placement{Rotation: rotated.Rotation, X: x, Score: score}
				found = true
			}
		}
	}
	return best, found
}

func drop(g *grid.Grid, p piece.Piece) piece.Piece {
	for {
		below := p.Offset(0, 1)
		if !g.IsValid(below) {
			return p
		}
		p = below
	}
}

// Evaluate scores the board after landing p on a copy of g.
func Evaluate(g grid.Grid, p piece.Piece, w Weights) float64 {
	g.Merge(p)
	full := g.FullRows()
	g.RemoveRows(full)

	var heights [grid.Cols]int
	holes := 0
	for x := range grid.Cols {
		top := grid.Rows
		for y := range grid.Rows {
			if g.Filled(x, y) {
				top = min(top, y)
			} else if top < y {
				holes++
			}
		}
		heights[x] = grid.Rows - top
	}

	aggregate, bumpiness := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bumpiness += abs(h - heights[x-1])
		}
	}

	return w.Height*float64(aggregate) +
		w.Lines*float64(len(full)) +
		w.Holes*float64(holes) +
		w.Bumpiness*float64(bumpiness)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Intents turns a placement into the key presses that reach it from p, ending
// with a hard drop.
func Intents(p piece.Piece, target Placement) []session.Intent {
	var out []session.Intent
	for r := p.Rotation; r != target.Rotation; r = (r + 1) % 4 {
		out = append(out, session.IntentRotate)
	}
	dx := target.X - p.X
	step := session.IntentRight
	if dx < 0 {
		step, dx = session.IntentLeft, -dx
	}
	for range dx {
		out = append(out, step)
	}
	return append(out, session.IntentHardDrop)
}
