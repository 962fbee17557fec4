package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/engine"
)

// DefaultSampleRate is used by every host unless configured otherwise.
const DefaultSampleRate = 44100

// Sink receives cues from a host.
type Sink interface {
	Play(ev engine.Sound)
}

// Nop discards every cue.
type Nop struct{}

func (Nop) Play(engine.Sound) {}

// Speaker mixes cues onto the system audio device.
type Speaker struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
}

// NewSpeaker opens the audio device. Only one Speaker may exist per process.
func NewSpeaker(rate int) (*Speaker, error) {
	sr := beep.SampleRate(rate)
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	s := &Speaker{
		rate:  sr,
		mixer: &beep.Mixer{},
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues ev on the mixer and returns immediately.
func (s *Speaker) Play(ev engine.Sound) {
	speaker.Lock()
	s.mixer.Add(Streamer(ev, s.rate))
	speaker.Unlock()
}

// Close stops playback.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
