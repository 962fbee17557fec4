package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/session"
)

// KeyIntent maps a key press to a player action. Arrows, vi keys and WASD all
// steer.
func KeyIntent(ev *tcell.EventKey) session.Intent {
	switch ev.Key() {
	case tcell.KeyLeft:
		return session.IntentLeft
	case tcell.KeyRight:
		return session.IntentRight
	case tcell.KeyUp:
		return session.IntentRotate
	case tcell.KeyDown:
		return session.IntentSoftDropOn
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return session.IntentQuit
	case tcell.KeyRune:
	default:
		return session.IntentNone
	}

	switch unicode.ToLower(ev.Rune()) {
	case 'h', 'a':
		return session.IntentLeft
	case 'l', 'd':
		return session.IntentRight
	case 'k', 'w':
		return session.IntentRotate
	case 'j', 's':
		return session.IntentSoftDropOn
	case ' ':
		return session.IntentHardDrop
	case 'p':
		return session.IntentPause
	case 'r':
		return session.IntentRestart
	case 'm':
		return session.IntentToggleSound
	case 't':
		return session.IntentNextTheme
	case 'g':
		return session.IntentNextLocale
	case 'q':
		return session.IntentQuit
	}
	return session.IntentNone
}
