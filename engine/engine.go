// Package engine is the falling-block simulation: a single-threaded state machine
// advanced by host-supplied timestamps and player intents. It owns one grid, the
// falling and next pieces, the bag randomizer, the score counters, the clear
// animation window and cosmetic particles, and pushes a State snapshot to its
// observer after every mutation.
//
// The engine never reads a clock and never blocks. Every method must be called
// from the same goroutine.
package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
)

const (
	LinesPerLevel = 10

	BaseDropInterval       = time.Second
	MinDropInterval        = 100 * time.Millisecond
	SpeedFactor            = 0.8
	FastDropInterval       = 50 * time.Millisecond
	ClearAnimationDuration = 400 * time.Millisecond
	SoftDropSoundThrottle  = 120 * time.Millisecond

	SpawnX = grid.Cols/2 - 2
	SpawnY = 0
)

// LineScore is the base award per clear size, multiplied by the level.
var LineScore = [...]int{0, 100, 300, 500, 800}

// DropInterval returns the natural descent interval at the given level.
func DropInterval(level int) time.Duration {
	interval := time.Duration(float64(BaseDropInterval) * math.Pow(SpeedFactor, float64(level-1)))
	return max(MinDropInterval, interval)
}

// Option configures an Engine.
type Option func(*Engine)

// WithShuffler sets the randomness source for the bag randomizer.
func WithShuffler(s piece.Shuffler) Option {
	return func(e *Engine) {
		e.shuffler = s
	}
}

// WithParticleRand sets the randomness source for cosmetic particles.
func WithParticleRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.particleRand = r
	}
}

// WithSeed seeds both the bag and particle sources deterministically.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.shuffler = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		e.particleRand = rand.New(rand.NewPCG(seed^0xda942042e4dd58b5, seed))
	}
}

// Engine is the simulation. The zero value is not usable; call New.
type Engine struct {
	state State
	bag   piece.Bag

	onChange func(State)
	onSound  func(Sound)

	shuffler     piece.Shuffler
	particleRand *rand.Rand

	now               time.Duration
	fastDrop          bool
	hardDropping      bool
	lastSoftDropSound time.Duration
}

// New builds an engine already in the Playing phase with a fresh grid, a fresh
// bag, and current and next pieces drawn. onChange receives every snapshot and
// may be nil.
func New(onChange func(State), opts ...Option) *Engine {
	e := &Engine{onChange: onChange}
	for _, opt := range opts {
		opt(e)
	}
	if e.shuffler == nil {
		e.shuffler = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.particleRand == nil {
		e.particleRand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	e.reset()
	return e
}

// reset draws current then next from one shared bag so every aligned run of
// seven pieces, starting with the first, is a permutation.
func (e *Engine) reset() {
	bag := piece.NewBag(e.shuffler)
	current, bag := bag.DrawAt(SpawnX, SpawnY)
	next, bag := bag.DrawAt(SpawnX, SpawnY)

	e.bag = bag
	e.state = State{
		Grid:    grid.New(),
		Current: &current,
		Next:    &next,
		Level:   1,
	}
}

// SetSoundCallback registers the single sound observer. A later call replaces
// the earlier one; nil removes it.
func (e *Engine) SetSoundCallback(fn func(Sound)) {
	e.onSound = fn
}

// State returns a snapshot of the current engine state.
func (e *Engine) State() State {
	return e.snapshot()
}

// Phase returns the engine's state-machine position.
func (e *Engine) Phase() Phase {
	return e.state.Phase()
}

// DropInterval returns the effective descent interval, honouring fast drop.
func (e *Engine) DropInterval() time.Duration {
	interval := DropInterval(e.state.Level)
	if e.fastDrop {
		return min(FastDropInterval, interval)
	}
	return interval
}

// Tick advances natural gravity. It is a no-op unless the engine is Playing and
// the drop interval has elapsed since the last descent.
func (e *Engine) Tick(now time.Duration) {
	e.now = now
	if e.Phase() != Playing {
		return
	}
	if now-e.state.LastDropAt < e.DropInterval() {
		return
	}

	if e.state.Current == nil {
		e.state.LastDropAt = now
		e.spawn()
		e.emit()
		return
	}

	moved := e.state.Current.Offset(0, 1)
	if e.state.Grid.IsValid(moved) {
		e.state.Current = &moved
		e.state.LastDropAt = now
		if e.fastDrop && now-e.lastSoftDropSound >= SoftDropSoundThrottle {
			e.lastSoftDropSound = now
			e.sound(SoundSoftDrop)
		}
	} else {
		e.lock()
	}
	e.emit()
}

// AdvanceClearAnimation removes the rows of a finished clear animation and
// spawns the next piece. Before the window has elapsed, or while paused, it does
// nothing.
func (e *Engine) AdvanceClearAnimation(now time.Duration) {
	e.now = now
	if len(e.state.ClearingRows) == 0 || e.state.Paused || e.state.GameOver {
		return
	}
	if now-e.state.ClearStartedAt < ClearAnimationDuration {
		return
	}

	e.state.Grid.RemoveRows(e.state.ClearingRows)
	e.state.ClearingRows = nil
	e.spawn()
	e.emit()
}

// Move shifts the falling piece one column; dx is -1 or +1. Blocked moves are
// dropped silently.
func (e *Engine) Move(dx int) {
	if !e.canAct() {
		return
	}
	moved := e.state.Current.Offset(dx, 0)
	if !e.state.Grid.IsValid(moved) {
		return
	}
	e.state.Current = &moved
	e.sound(SoundMove)
	e.emit()
}

// Rotate turns the falling piece clockwise. A rotation that would leave the
// board or overlap settled cells is refused; there are no wall kicks.
func (e *Engine) Rotate() {
	if !e.canAct() {
		return
	}
	rotated := e.state.Current.Rotate()
	if !e.state.Grid.IsValid(rotated) {
		return
	}
	e.state.Current = &rotated
	e.sound(SoundRotate)
	e.emit()
}

// HardDrop drops the falling piece to its resting position and locks it.
func (e *Engine) HardDrop() {
	if !e.canAct() {
		return
	}
	dropped := dropTarget(&e.state.Grid, *e.state.Current)
	e.state.Current = &dropped
	e.sound(SoundHardDrop)
	e.state.Particles = append(e.state.Particles, burst(e.particleRand, dropped, HardDropParticles)...)

	e.hardDropping = true
	e.lock()
	e.emit()
}

// SetFastDrop engages or releases soft drop.
func (e *Engine) SetFastDrop(enabled bool) {
	e.fastDrop = enabled
}

// FastDrop reports whether soft drop is engaged.
func (e *Engine) FastDrop() bool {
	return e.fastDrop
}

// TogglePause flips the paused flag. It reports false, changing nothing, once
// the game is over.
func (e *Engine) TogglePause() bool {
	if e.state.GameOver {
		return false
	}
	e.state.Paused = !e.state.Paused
	e.emit()
	return true
}

// Restart discards the game and starts a fresh one. Observers, randomness
// sources and the soft-drop flag are kept.
func (e *Engine) Restart() {
	e.reset()
	e.hardDropping = false
	e.lastSoftDropSound = 0
	e.emit()
}

// UpdateParticles integrates cosmetic particles over dt.
func (e *Engine) UpdateParticles(dt time.Duration) {
	if len(e.state.Particles) == 0 {
		return
	}
	e.state.Particles = step(e.state.Particles, dt)
	e.emit()
}

func (e *Engine) canAct() bool {
	return e.Phase() == Playing && e.state.Current != nil
}

// lock merges the falling piece and either opens a clear window or spawns.
func (e *Engine) lock() {
	current := e.state.Current
	if current == nil {
		return
	}
	e.state.Grid.Merge(*current)
	e.state.Current = nil
	if !e.hardDropping {
		e.sound(SoundDrop)
	}
	e.hardDropping = false

	rows := e.state.Grid.FullRows()
	if len(rows) == 0 {
		e.spawn()
		return
	}

	n := len(rows)
	e.state.LastLinesCleared = n
	e.state.ClearingRows = rows
	e.state.ClearStartedAt = e.now
	e.sound(LineClearSound(n))

	points := 0
	if n < len(LineScore) {
		points = LineScore[n]
	}
	e.state.Score += points * e.state.Level
	e.state.Lines += n
	e.state.LinesClearedTotal += n

	if level := e.state.LinesClearedTotal/LinesPerLevel + 1; level > e.state.Level {
		e.state.Level = level
		e.sound(SoundLevelUp)
	}
}

// spawn promotes the next piece to the spawn anchor. Failure to fit is the only
// way into GameOver.
func (e *Engine) spawn() bool {
	if e.state.Next == nil {
		return false
	}
	candidate := e.state.Next.At(SpawnX, SpawnY)
	if !e.state.Grid.IsValid(candidate) {
		e.state.GameOver = true
		e.sound(SoundGameOver)
		return false
	}

	next, bag := e.bag.DrawAt(SpawnX, SpawnY)
	e.bag = bag
	e.state.Current = &candidate
	e.state.Next = &next
	return true
}

func (e *Engine) sound(s Sound) {
	if e.onSound != nil {
		e.onSound(s)
	}
}

func (e *Engine) emit() {
	if e.onChange != nil {
		e.onChange(e.snapshot())
	}
}

func (e *Engine) snapshot() State {
	s := e.state
	if s.Current != nil {
		current := *s.Current
		s.Current = &current
	}
	if s.Next != nil {
		next := *s.Next
		s.Next = &next
	}
	s.Bag = e.bag.Queue()
	if s.ClearingRows != nil {
		s.ClearingRows = append([]int(nil), s.ClearingRows...)
	}
	if s.Particles != nil {
		s.Particles = append([]Particle(nil), s.Particles...)
	}
	return s
}
