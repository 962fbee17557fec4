package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/session"
)

const (
	// RepeatDelay and RepeatInterval are in ticks; held movement keys
	// auto-repeat once the delay has passed.
	RepeatDelay    = 10
	RepeatInterval = 3
)

// Binding ties a key to the intent it fires.
type Binding struct {
	Key    ebiten.Key
	Intent session.Intent
	Repeat bool
}

var Bindings = []Binding{
	{ebiten.KeyArrowLeft, session.IntentLeft, true},
	{ebiten.KeyA, session.IntentLeft, true},
	{ebiten.KeyArrowRight, session.IntentRight, true},
	{ebiten.KeyD, session.IntentRight, true},
	{ebiten.KeyArrowUp, session.IntentRotate, false},
	{ebiten.KeyW, session.IntentRotate, false},
	{ebiten.KeySpace, session.IntentHardDrop, false},
	{ebiten.KeyP, session.IntentPause, false},
	{ebiten.KeyR, session.IntentRestart, false},
	{ebiten.KeyM, session.IntentToggleSound, false},
	{ebiten.KeyT, session.IntentNextTheme, false},
	{ebiten.KeyL, session.IntentNextLocale, false},
	{ebiten.KeyQ, session.IntentQuit, false},
	{ebiten.KeyEscape, session.IntentQuit, false},
}

// softDropKeys engage soft drop while held.
var softDropKeys = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}

// fires reports whether a key held for ticks ticks triggers this tick.
func fires(ticks int, repeat bool) bool {
	if ticks == 1 {
		return true
	}
	return repeat && ticks >= RepeatDelay && (ticks-RepeatDelay)%RepeatInterval == 0
}

// Keyboard reports key state; ebitenKeyboard reads it from inpututil.
type Keyboard interface {
	PressDuration(ebiten.Key) int
	JustReleased(ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) PressDuration(k ebiten.Key) int { return inpututil.KeyPressDuration(k) }
func (ebitenKeyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// Intents returns this tick's intents in binding order.
func Intents(kb Keyboard) []session.Intent {
	var out []session.Intent
	for _, b := range Bindings {
		if fires(kb.PressDuration(b.Key), b.Repeat) {
			out = append(out, b.Intent)
		}
	}

	held, released := false, false
	for _, k := range softDropKeys {
		switch d := kb.PressDuration(k); {
		case d == 1:
			out = append(out, session.IntentSoftDropOn)
			held = true
		case d > 1:
			held = true
		}
		if kb.JustReleased(k) {
			released = true
		}
	}
	if released && !held {
		out = append(out, session.IntentSoftDropOff)
	}
	return out
}
