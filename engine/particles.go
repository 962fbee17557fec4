package engine

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/piece"
)

const (
	HardDropParticles = 12

	// ParticleLifetime is how long a particle takes to fade from life 1 to 0.
	ParticleLifetime = 600 * time.Millisecond

	// ParticleGravity is the downward acceleration in cells per second squared.
	ParticleGravity = 20.0
)

var particleColor = color.RGBA{0xff, 0xff, 0xff, 0xff}

// Particle is a cosmetic spark in board coordinates (cells). It never touches the
// grid or the score.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Color  color.RGBA
	Life   float64
	Size   float64
}

// burst scatters count particles over the centres of the piece's cells.
func burst(rng *rand.Rand, p piece.Piece, count int) []Particle {
	cells := p.Cells()
	out := make([]Particle, 0, count)
	for i := range count {
		c := piece.Point{X: p.X, Y: p.Y}
		if len(cells) > 0 {
			c = cells[i%len(cells)]
		}
		out = append(out, Particle{
			X:     float64(c.X) + 0.5,
			Y:     float64(c.Y) + 0.5,
			VX:    (rng.Float64() - 0.5) * 8,
			VY:    (rng.Float64()-0.5)*8 - 2,
			Color: particleColor,
			Life:  1,
			Size:  0.2 + rng.Float64()*0.2,
		})
	}
	return out
}

// step integrates particles over dt and returns the survivors in a new slice.
func step(particles []Particle, dt time.Duration) []Particle {
	secs := dt.Seconds()
	decay := float64(dt) / float64(ParticleLifetime)

	alive := make([]Particle, 0, len(particles))
	for _, p := range particles {
		p.X += p.VX * secs
		p.Y += p.VY * secs
		p.VY += ParticleGravity * secs
		p.Life -= decay
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	return alive
}
