package sound

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/plus3/blockfall/engine"
)

// tone is a fixed-length sine with a linear attack and release.
type tone struct {
	freq    float64
	rate    beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
}

func newTone(seg Segment, rate beep.SampleRate) *tone {
	total := rate.N(seg.Duration)
	return &tone{
		freq:    seg.Freq,
		rate:    rate,
		total:   total,
		attack:  min(rate.N(attack), total/2),
		release: min(rate.N(release), total/2),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		gain := 1.0
		if t.attack > 0 && t.pos < t.attack {
			gain = float64(t.pos) / float64(t.attack)
		}
		if left := t.total - t.pos; t.release > 0 && left < t.release {
			gain = float64(left) / float64(t.release)
		}
		v := Amplitude * gain * math.Sin(2*math.Pi*t.freq*float64(t.pos)/float64(t.rate))
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

// Streamer returns a fresh stream for ev at the given sample rate.
func Streamer(ev engine.Sound, rate beep.SampleRate) beep.Streamer {
	segs := Segments(ev)
	parts := make([]beep.Streamer, len(segs))
	for i, s := range segs {
		parts[i] = newTone(s, rate)
	}
	return beep.Seq(parts...)
}

// RenderPCM renders ev as signed 16-bit little-endian interleaved stereo.
func RenderPCM(ev engine.Sound, rate int) []byte {
	s := Streamer(ev, beep.SampleRate(rate))
	out := make([]byte, 0, beep.SampleRate(rate).N(Duration(ev))*4)

	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(quantize(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(quantize(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

func quantize(v float64) int16 {
	return int16(max(-32768, min(32767, math.Round(v*32767))))
}

// WriteWAV encodes ev as a 16-bit stereo WAV file.
func WriteWAV(w io.WriteSeeker, ev engine.Sound, rate int) error {
	format := beep.Format{
		SampleRate:  beep.SampleRate(rate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(w, Streamer(ev, format.SampleRate), format); err != nil {
		return fmt.Errorf("encoding %s: %w", ev, err)
	}
	return nil
}
