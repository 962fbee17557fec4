package gui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockfall/debugui"
	"github.com/plus3/blockfall/session"
)

const historyFrames = 120

type overlay struct {
	backend   *debugui.Backend
	system    *debugui.System
	scheduler *debugui.SchedulerWindow
	mute      bool
}

// EnableDebug creates the ImGui window and registers the developer windows on
// the session's scheduler. Call it before Run.
func (g *Game) EnableDebug(width, height int) {
	s := g.Session
	o := &overlay{
		backend:   debugui.NewBackend(Title+" (debug)", width, height),
		system:    &debugui.System{},
		scheduler: debugui.NewSchedulerWindow(historyFrames),
		mute:      !s.SoundOn(),
	}

	o.system.Add(func() {
		debugui.EngineWindow(s.State(), s.Engine.DropInterval())
	})
	o.system.Add(func() {
		fastDrop := s.Engine.FastDrop()
		mute := o.mute
		debugui.ControlWindow(debugui.Controls{
			TogglePause: func() { s.Queue(session.IntentPause) },
			Restart:     func() { s.Queue(session.IntentRestart) },
			FastDrop:    &fastDrop,
			Mute:        &mute,
		})
		if fastDrop != s.Engine.FastDrop() {
			s.Engine.SetFastDrop(fastDrop)
		}
		if mute != o.mute {
			o.mute = mute
			s.Queue(session.IntentToggleSound)
		}
	})
	o.system.Add(func() {
		stats := s.Scheduler.GetStats()
		o.scheduler.Record(g.frameDelta(), stats)
		o.scheduler.Render(stats)
	})

	s.Scheduler.Register(o.system)
	g.debug = o
}

func (g *Game) frameDelta() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}
