package engine

import (
	"time"

	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
)

// Phase is the engine's state-machine position.
type Phase uint8

const (
	Playing Phase = iota
	Paused
	ClearingLines
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case ClearingLines:
		return "clearing"
	case GameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of everything the engine owns. Slices and
// pointers inside a State are never shared with the engine, so observers may keep
// a State around without it changing underneath them.
type State struct {
	Grid    grid.Grid
	Current *piece.Piece
	Next    *piece.Piece

	Score             int
	Level             int
	Lines             int
	LinesClearedTotal int
	LastLinesCleared  int

	GameOver bool
	Paused   bool

	Bag            []piece.Shape
	ClearingRows   []int
	ClearStartedAt time.Duration
	Particles      []Particle
	LastDropAt     time.Duration
}

// Phase derives the state-machine position from the snapshot's flags.
func (s State) Phase() Phase {
	switch {
	case s.GameOver:
		return GameOver
	case s.Paused:
		return Paused
	case len(s.ClearingRows) > 0:
		return ClearingLines
	default:
		return Playing
	}
}

// Clearing reports whether row y is inside its clear-animation window.
func (s State) Clearing(y int) bool {
	for _, r := range s.ClearingRows {
		if r == y {
			return true
		}
	}
	return false
}

// Ghost returns where the current piece would come to rest if hard-dropped.
func (s State) Ghost() (piece.Piece, bool) {
	if s.Current == nil {
		return piece.Piece{}, false
	}
	return dropTarget(&s.Grid, *s.Current), true
}

func dropTarget(g *grid.Grid, p piece.Piece) piece.Piece {
	for {
		below := p.Offset(0, 1)
		if !g.IsValid(below) {
			return p
		}
		p = below
	}
}
