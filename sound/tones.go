// Package sound synthesises the short cues the engine emits and plays them
// through the system speaker.
package sound

import (
	"time"

	"github.com/plus3/blockfall/engine"
)

const (
	// Amplitude is the peak level of every tone.
	Amplitude = 0.2

	attack  = 3 * time.Millisecond
	release = 8 * time.Millisecond
)

// Segment is one sine tone in a cue.
type Segment struct {
	Freq     float64
	Duration time.Duration
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Tones maps every cue to its segments, played back to back.
var Tones = map[engine.Sound][]Segment{
	engine.SoundDrop:       {{180, ms(60)}},
	engine.SoundRotate:     {{264, ms(40)}, {330, ms(30)}},
	engine.SoundMove:       {{200, ms(25)}},
	engine.SoundSoftDrop:   {{120, ms(20)}},
	engine.SoundHardDrop:   {{80, ms(80)}, {60, ms(100)}},
	engine.SoundLevelUp:    {{523, ms(80)}, {659, ms(80)}, {784, ms(80)}, {1047, ms(150)}},
	engine.SoundLineClear:  {{440, ms(80)}, {554, ms(100)}},
	engine.SoundLineClear1: {{440, ms(80)}, {554, ms(100)}},
	engine.SoundLineClear2: {{440, ms(70)}, {554, ms(70)}, {659, ms(120)}},
	engine.SoundLineClear3: {{440, ms(60)}, {554, ms(60)}, {659, ms(60)}, {784, ms(140)}},
	engine.SoundLineClear4: {{523, ms(70)}, {659, ms(70)}, {784, ms(70)}, {1047, ms(200)}},
	engine.SoundGameOver:   {{200, ms(250)}, {160, ms(250)}, {120, ms(400)}},
	engine.SoundClick:      {{400, ms(30)}},
	engine.SoundStart:      {{523, ms(80)}, {659, ms(80)}, {784, ms(120)}},
}

var fallback = []Segment{{300, ms(50)}}

// Segments returns the tones for ev, or a short 300Hz blip for unknown cues.
func Segments(ev engine.Sound) []Segment {
	if segs, ok := Tones[ev]; ok {
		return segs
	}
	return fallback
}

// Duration is the total playing time of ev.
func Duration(ev engine.Sound) time.Duration {
	var d time.Duration
	for _, s := range Segments(ev) {
		d += s.Duration
	}
	return d
}
