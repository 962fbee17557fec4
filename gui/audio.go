package gui

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/sound"
)

// Audio plays cues through ebiten's audio context. Each cue is synthesised
// once and replayed from memory.
type Audio struct {
	ctx  *audio.Context
	rate int

	mu  sync.Mutex
	pcm map[engine.Sound][]byte
}

func NewAudio(rate int) *Audio {
	return &Audio{
		ctx:  audio.NewContext(rate),
		rate: rate,
		pcm:  make(map[engine.Sound][]byte),
	}
}

func (a *Audio) Play(ev engine.Sound) {
	a.mu.Lock()
	data, ok := a.pcm[ev]
	if !ok {
		data = sound.RenderPCM(ev, a.rate)
		a.pcm[ev] = data
	}
	a.mu.Unlock()

	a.ctx.NewPlayerFromBytes(data).Play()
}
