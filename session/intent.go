package session

// Intent is a host-independent player action.
type Intent uint8

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentRotate
	IntentSoftDropOn
	IntentSoftDropOff
	IntentHardDrop
	IntentPause
	IntentRestart
	IntentToggleSound
	IntentNextTheme
	IntentNextLocale
	IntentQuit
)

var intentNames = [...]string{
	IntentNone:        "none",
	IntentLeft:        "left",
	IntentRight:       "right",
	IntentRotate:      "rotate",
	IntentSoftDropOn:  "softdrop-on",
	IntentSoftDropOff: "softdrop-off",
	IntentHardDrop:    "harddrop",
	IntentPause:       "pause",
	IntentRestart:     "restart",
	IntentToggleSound: "sound",
	IntentNextTheme:   "theme",
	IntentNextLocale:  "locale",
	IntentQuit:        "quit",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
