package engine

import "fmt"

// Sound is a discrete audio cue. The engine emits all of them except Start and
// Click, which belong to host UI layers sharing the same vocabulary.
type Sound uint8

const (
	SoundDrop Sound = iota
	SoundRotate
	SoundMove
	SoundSoftDrop
	SoundHardDrop
	SoundLevelUp
	SoundLineClear
	SoundLineClear1
	SoundLineClear2
	SoundLineClear3
	SoundLineClear4
	SoundGameOver
	SoundStart
	SoundClick
)

// Sounds lists the whole vocabulary in declaration order.
var Sounds = []Sound{
	SoundDrop, SoundRotate, SoundMove, SoundSoftDrop, SoundHardDrop, SoundLevelUp,
	SoundLineClear, SoundLineClear1, SoundLineClear2, SoundLineClear3, SoundLineClear4,
	SoundGameOver, SoundStart, SoundClick,
}

var soundNames = [...]string{
	SoundDrop:       "drop",
	SoundRotate:     "rotate",
	SoundMove:       "move",
	SoundSoftDrop:   "softdrop",
	SoundHardDrop:   "harddrop",
	SoundLevelUp:    "levelup",
	SoundLineClear:  "lineclear",
	SoundLineClear1: "lineclear1",
	SoundLineClear2: "lineclear2",
	SoundLineClear3: "lineclear3",
	SoundLineClear4: "lineclear4",
	SoundGameOver:   "gameover",
	SoundStart:      "start",
	SoundClick:      "click",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return fmt.Sprintf("Sound(%d)", uint8(s))
}

// MarshalText encodes the cue by name.
func (s Sound) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSound looks a cue up by its name.
func ParseSound(name string) (Sound, error) {
	for i, n := range soundNames {
		if n == name {
			return Sound(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sound %q", name)
}

// LineClearSound maps a clear size to its cue. Sizes outside 1..4 fall back to
// the generic cue.
func LineClearSound(rows int) Sound {
	switch rows {
	case 1:
		return SoundLineClear1
	case 2:
		return SoundLineClear2
	case 3:
		return SoundLineClear3
	case 4:
		return SoundLineClear4
	default:
		return SoundLineClear
	}
}
