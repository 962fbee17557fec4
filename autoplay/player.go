package autoplay

import (
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/session"
)

// Result is one finished game.
type Result struct {
	Score int
	Level int
	Lines int
}

// Player is a loop.System that plays one intent per frame.
type Player struct {
	Session *session.Session
	Weights Weights
	// AutoRestart starts a new game as soon as one ends.
	AutoRestart bool

	Results []Result
	Pieces  int

	plan     []session.Intent
	expected piece.Piece
	filled   int
	finished bool
}

func NewPlayer(s *session.Session) *Player {
	return &Player{Session: s, Weights: DefaultWeights}
}

func (p *Player) Execute(frame *loop.Frame) {
	st := p.Session.State()

	switch st.Phase() {
	case engine.GameOver:
		p.plan = nil
		if !p.finished {
			p.finished = true
			p.Results = append(p.Results, Result{Score: st.Score, Level: st.Level, Lines: st.Lines})
		}
		if p.AutoRestart {
			frame.Commands.Defer(func() { p.Session.Apply(session.IntentRestart) })
		}
		return
	case engine.Playing:
		p.finished = false
	default:
		return
	}
	if st.Current == nil {
		return
	}

	cur := *st.Current
	switch filled := st.Grid.FilledCount(); {
	case len(p.plan) == 0 || filled != p.filled:
		p.replan(st.Grid, cur)
		p.filled = filled
	case !sameColumn(cur, p.expected):
		// A move or rotation was refused; settle where the piece is.
		p.plan = []session.Intent{session.IntentHardDrop}
	}

	intent := p.plan[0]
	p.plan = p.plan[1:]
	switch intent {
	case session.IntentRotate:
		p.expected = p.expected.Rotate()
	case session.IntentLeft:
		p.expected = p.expected.Offset(-1, 0)
	case session.IntentRight:
		p.expected = p.expected.Offset(1, 0)
	case session.IntentHardDrop:
		p.Pieces++
		p.plan = nil
	}
	frame.Commands.Defer(func() { p.Session.Apply(intent) })
}

// replan targets the best placement for cur.
func (p *Player) replan(g grid.Grid, cur piece.Piece) {
	p.expected = cur
	target, ok := Best(g, cur, p.Weights)
	if !ok {
		p.plan = []session.Intent{session.IntentHardDrop}
		return
	}
	p.plan = Intents(cur, target)
}

func sameColumn(a, b piece.Piece) bool {
	return a.Shape == b.Shape && a.Rotation == b.Rotation && a.X == b.X
}
