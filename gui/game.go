// Package gui hosts the game in an ebiten window, with an optional Dear ImGui
// developer overlay.
package gui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/theme"
)

const Title = "Blockfall"

// Game implements ebiten.Game.
type Game struct {
	Session *session.Session

	keyboard Keyboard
	tick     int64
	debug    *overlay
}

func NewGame(s *session.Session) *Game {
	return &Game{Session: s, keyboard: ebitenKeyboard{}}
}

// now derives host time from ebiten's fixed tick rate so the simulation is
// independent of wall-clock jitter.
func (g *Game) now() time.Duration {
	return time.Duration(g.tick) * time.Second / time.Duration(ebiten.TPS())
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.backend.BeginFrame()
		defer g.debug.backend.EndFrame()
	}

	if g.debug == nil || !g.debug.system.Input.WantCaptureKeyboard {
		for _, intent := range Intents(g.keyboard) {
			g.Session.Queue(intent)
		}
	}

	g.tick++
	g.Session.Frame(g.now())
	if g.Session.Quit() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) view() View {
	st := g.Session.Store()
	now := g.Session.Scheduler.Now()
	return View{
		State:   g.Session.State(),
		Palette: theme.Get(st.Theme()),
		Locale:  st.Locale(),
		Best:    st.HighScore(),
		NewBest: g.Session.NewBest(),
		SoundOn: g.Session.SoundOn(),
		Toasts:  g.Session.Toasts(now),
		Now:     now,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	Draw(screen, g.view())
	if g.debug != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f", ebiten.ActualTPS(), ebiten.ActualFPS()), 4, ScreenHeight-16)
		g.debug.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.backend.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until the player quits.
func Run(g *Game, scale int) error {
	if g.debug == nil {
		ebiten.SetWindowSize(ScreenWidth*scale, ScreenHeight*scale)
		ebiten.SetWindowTitle(Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g.Session.Start()
	return ebiten.RunGame(g)
}
