package sound

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryCueHasTones(t *testing.T) {
	for _, ev := range engine.Sounds {
		_, ok := Tones[ev]
		assert.True(t, ok, ev.String())
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 60*time.Millisecond, Duration(engine.SoundDrop))
	assert.Equal(t, 70*time.Millisecond, Duration(engine.SoundRotate))
	assert.Equal(t, 900*time.Millisecond, Duration(engine.SoundGameOver))
	assert.Equal(t, 50*time.Millisecond, Duration(engine.Sound(200)), "unknown cues fall back")
}

func TestRenderPCM(t *testing.T) {
	const rate = 44100
	pcm := RenderPCM(engine.SoundHardDrop, rate)

	frames := beep.SampleRate(rate).N(80*time.Millisecond) + beep.SampleRate(rate).N(100*time.Millisecond)
	require.Len(t, pcm, frames*4)

	peak := 0
	for i := 0; i < len(pcm); i += 2 {
		v := int(int16(binary.LittleEndian.Uint16(pcm[i:])))
		peak = max(peak, v, -v)
	}
	amp := Amplitude
	assert.LessOrEqual(t, peak, int(amp*32767)+1)
	assert.Greater(t, peak, int(amp*32767*0.9))

	// Stereo channels carry the same signal.
	for i := 0; i < len(pcm); i += 4 {
		assert.Equal(t, pcm[i:i+2], pcm[i+2:i+4])
	}
}

func TestToneEnvelope(t *testing.T) {
	s := newTone(Segment{Freq: 440, Duration: 20 * time.Millisecond}, 8000)
	buf := make([][2]float64, 1000)

	n, ok := s.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 160, n)
	assert.Zero(t, buf[0][0], "attack starts silent")

	n, ok = s.Stream(buf)
	assert.Zero(t, n)
	assert.False(t, ok)
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levelup.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, engine.SoundLevelUp, 22050))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	stream, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, beep.SampleRate(22050), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	frames := 0
	for _, seg := range Segments(engine.SoundLevelUp) {
		frames += format.SampleRate.N(seg.Duration)
	}
	assert.Equal(t, frames, stream.Len())
}

func TestNop(t *testing.T) {
	var sink Sink = Nop{}
	assert.NotPanics(t, func() { sink.Play(engine.SoundClick) })
}
