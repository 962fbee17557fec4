// Package tui hosts the game in a terminal through tcell.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/theme"
)

const (
	FrameInterval = 16 * time.Millisecond

	// SoftDropHold keeps soft drop engaged after a down press. Terminals report
	// no key releases, so auto-repeat refreshes the window while the key is held.
	SoftDropHold = 250 * time.Millisecond
)

type App struct {
	Screen   tcell.Screen
	Session  *session.Session
	Renderer *Renderer

	softDropUntil time.Duration
	softDropping  bool
}

func New(screen tcell.Screen, s *session.Session) *App {
	return &App{
		Screen:   screen,
		Session:  s,
		Renderer: &Renderer{Screen: screen},
	}
}

// Run drives the game until the player quits or ctx is cancelled. The screen
// must already be initialised; Run does not finalise it.
func (a *App) Run(ctx context.Context) error {
	start := time.Now()
	now := func() time.Duration { return time.Since(start) }

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	a.Session.Start()
	a.Step(now())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			a.HandleEvent(ev, now())
		case <-ticker.C:
			a.Step(now())
		}
		if a.Session.Quit() {
			return nil
		}
	}
}

// HandleEvent queues the intent for a key press and resyncs on resize.
func (a *App) HandleEvent(ev tcell.Event, now time.Duration) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		intent := KeyIntent(ev)
		switch intent {
		case session.IntentNone:
			return
		case session.IntentSoftDropOn:
			a.softDropUntil = now + SoftDropHold
			if a.softDropping {
				return
			}
			a.softDropping = true
		case session.IntentQuit:
			// Quit takes effect immediately.
			a.Session.Apply(intent)
			return
		}
		a.Session.Queue(intent)
	case *tcell.EventResize:
		a.Screen.Sync()
	}
}

// Step runs one frame at host time now and repaints.
func (a *App) Step(now time.Duration) {
	if a.softDropping && now >= a.softDropUntil {
		a.softDropping = false
		a.Session.Queue(session.IntentSoftDropOff)
	}
	a.Session.Frame(now)

	st := a.Session.Store()
	a.Renderer.Draw(View{
		State:   a.Session.State(),
		Palette: theme.Get(st.Theme()),
		Locale:  st.Locale(),
		Best:    st.HighScore(),
		NewBest: a.Session.NewBest(),
		SoundOn: a.Session.SoundOn(),
		Toasts:  a.Session.Toasts(now),
		Now:     now,
	})
	a.Screen.Show()
}
