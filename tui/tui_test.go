package tui

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedOrder struct{}

func (fixedOrder) Shuffle(int, func(i, j int)) {}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(Width, Height)
	return screen
}

func newApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t)
	s := session.New(session.Options{
		Store:         store.Memory(),
		EngineOptions: []engine.Option{engine.WithSeed(3), engine.WithShuffler(fixedOrder{})},
	})
	return New(screen, s), screen
}

func row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := range w {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestOver(t *testing.T) {
	under := color.RGBA{0, 0, 0, 0xff}
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, over(color.NRGBA{0xff, 0xff, 0xff, 0xff}, under))
	assert.Equal(t, under, over(color.NRGBA{0xff, 0xff, 0xff, 0}, under))
	assert.Equal(t, color.RGBA{0x33, 0x33, 0x33, 0xff}, over(color.NRGBA{0xff, 0xff, 0xff, 0x33}, under))
}

func TestKeyIntent(t *testing.T) {
	cases := []struct {
		key  tcell.Key
		ch   rune
		want session.Intent
	}{
		{tcell.KeyLeft, 0, session.IntentLeft},
		{tcell.KeyRight, 0, session.IntentRight},
		{tcell.KeyUp, 0, session.IntentRotate},
		{tcell.KeyDown, 0, session.IntentSoftDropOn},
		{tcell.KeyEscape, 0, session.IntentQuit},
		{tcell.KeyRune, 'h', session.IntentLeft},
		{tcell.KeyRune, 'L', session.IntentRight},
		{tcell.KeyRune, 'w', session.IntentRotate},
		{tcell.KeyRune, 'j', session.IntentSoftDropOn},
		{tcell.KeyRune, ' ', session.IntentHardDrop},
		{tcell.KeyRune, 'p', session.IntentPause},
		{tcell.KeyRune, 'r', session.IntentRestart},
		{tcell.KeyRune, 'm', session.IntentToggleSound},
		{tcell.KeyRune, 't', session.IntentNextTheme},
		{tcell.KeyRune, 'g', session.IntentNextLocale},
		{tcell.KeyRune, 'q', session.IntentQuit},
		{tcell.KeyRune, 'z', session.IntentNone},
		{tcell.KeyTab, 0, session.IntentNone},
	}
	for _, c := range cases {
		ev := tcell.NewEventKey(c.key, c.ch, tcell.ModNone)
		assert.Equal(t, c.want, KeyIntent(ev), "key %v rune %q", c.key, c.ch)
	}
}

func TestRenderBoardAndPanel(t *testing.T) {
	app, screen := newApp(t)
	app.Step(0)

	palette := theme.Get(theme.Classic)
	// The I piece spawns flat on its matrix's second row.
	y := BoardTop + 1
	for x := 3; x < 7; x++ {
		assert.Equal(t, rgb(palette.Piece(piece.I)), background(screen, BoardLeft+x*CellWidth, y), "column %d", x)
	}
	assert.Equal(t, rgb(over(palette.Board, palette.Background)), background(screen, BoardLeft, y))

	ghost := row(screen, BoardTop+19)
	assert.Contains(t, ghost, "[][][][]")

	var panel []string
	for y := range Height {
		panel = append(panel, row(screen, y))
	}
	all := strings.Join(panel, "\n")
	assert.Contains(t, all, "BLOCKFALL")
	assert.Contains(t, all, "Next")
	assert.Contains(t, all, "Score")
	assert.Contains(t, all, "Sound on")
	assert.NotContains(t, all, "PAUSED")
}

func TestRenderPausedAndLocale(t *testing.T) {
	app, screen := newApp(t)
	app.Session.Apply(session.IntentPause)
	app.Session.Apply(session.IntentNextLocale)
	app.Step(0)

	var lines []string
	for y := range Height {
		lines = append(lines, row(screen, y))
	}
	all := strings.Join(lines, "\n")
	assert.Contains(t, all, locale.T(locale.Russian, "game.paused"))
	assert.Contains(t, all, locale.T(locale.Russian, "game.score"))
	assert.NotContains(t, all, "Score")
}

func TestRenderGameOver(t *testing.T) {
	app, screen := newApp(t)
	for range 100 {
		if app.Session.State().GameOver {
			break
		}
		app.Session.Apply(session.IntentHardDrop)
	}
	require.True(t, app.Session.State().GameOver)
	app.Step(0)

	var lines []string
	for y := range Height {
		lines = append(lines, row(screen, y))
	}
	all := strings.Join(lines, "\n")
	assert.Contains(t, all, "GAME OVER")
	assert.Contains(t, all, "Press R to restart")
}

func TestSoftDropHoldWindow(t *testing.T) {
	app, _ := newApp(t)
	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)

	app.HandleEvent(down, 0)
	app.Step(0)
	assert.True(t, app.Session.Engine.FastDrop())

	// A repeat inside the window extends it.
	app.HandleEvent(down, 200*time.Millisecond)
	app.Step(300 * time.Millisecond)
	assert.True(t, app.Session.Engine.FastDrop())

	app.Step(200*time.Millisecond + SoftDropHold)
	assert.False(t, app.Session.Engine.FastDrop())
}

func TestKeysApplyOnNextStep(t *testing.T) {
	app, _ := newApp(t)
	x := app.Session.State().Current.X

	app.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 0)
	assert.Equal(t, x, app.Session.State().Current.X)

	app.Step(0)
	assert.Equal(t, x-1, app.Session.State().Current.X)
}

func TestRunQuits(t *testing.T) {
	app, screen := newApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.NoError(t, app.Run(ctx))
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, app.Run(ctx), context.Canceled)
}
