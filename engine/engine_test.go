package engine

import (
	"testing"
	"time"

	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalOrder leaves the bag in I, O, T, S, Z, J, L order.
type canonicalOrder struct{}

func (canonicalOrder) Shuffle(int, func(i, j int)) {}

type harness struct {
	*Engine
	states []State
	sounds []Sound
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	h.Engine = New(func(s State) { h.states = append(h.states, s) }, WithSeed(1), WithShuffler(canonicalOrder{}))
	h.SetSoundCallback(func(s Sound) { h.sounds = append(h.sounds, s) })
	return h
}

func (h *harness) last() State {
	return h.states[len(h.states)-1]
}

func (h *harness) fillRow(y int, except ...int) {
	skip := map[int]bool{}
	for _, x := range except {
		skip[x] = true
	}
	for x := range grid.Cols {
		if !skip[x] {
			h.state.Grid.Set(x, y, grid.Cell{Filled: true, Color: piece.Z.Color()})
		}
	}
}

func (h *harness) count(s Sound) int {
	n := 0
	for _, got := range h.sounds {
		if got == s {
			n++
		}
	}
	return n
}

func minX(p piece.Piece) int {
	m := grid.Cols
	for _, c := range p.Cells() {
		m = min(m, c.X)
	}
	return m
}

func TestInitialState(t *testing.T) {
	h := newHarness(t)
	s := h.State()

	assert.Equal(t, Playing, s.Phase())
	require.NotNil(t, s.Current)
	require.NotNil(t, s.Next)
	assert.Equal(t, piece.New(piece.I, SpawnX, SpawnY), *s.Current)
	assert.Equal(t, piece.New(piece.O, SpawnX, SpawnY), *s.Next)
	assert.Equal(t, []piece.Shape{piece.T, piece.S, piece.Z, piece.J, piece.L}, s.Bag)
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Grid.FilledCount())
	assert.Empty(t, h.states, "construction does not notify")
}

func TestDropInterval(t *testing.T) {
	assert.Equal(t, time.Second, DropInterval(1))
	assert.Equal(t, 800*time.Millisecond, DropInterval(2))
	assert.Equal(t, 640*time.Millisecond, DropInterval(3))
	assert.Equal(t, MinDropInterval, DropInterval(12))
	assert.Equal(t, MinDropInterval, DropInterval(40))

	h := newHarness(t)
	h.SetFastDrop(true)
	assert.Equal(t, FastDropInterval, h.DropInterval())
	h.state.Level = 30
	assert.Equal(t, FastDropInterval, h.DropInterval())
}

func TestTickWaitsForInterval(t *testing.T) {
	h := newHarness(t)

	h.Tick(999 * time.Millisecond)
	assert.Equal(t, 0, h.State().Current.Y)
	assert.Empty(t, h.states)

	h.Tick(time.Second)
	assert.Equal(t, 1, h.State().Current.Y)
	assert.Equal(t, time.Second, h.State().LastDropAt)
	assert.Len(t, h.states, 1)

	h.Tick(1500 * time.Millisecond)
	assert.Equal(t, 1, h.State().Current.Y)

	h.Tick(2 * time.Second)
	assert.Equal(t, 2, h.State().Current.Y)
}

func TestNaturalLock(t *testing.T) {
	h := newHarness(t)

	now := time.Duration(0)
	for h.State().Current.Shape == piece.I {
		now += time.Second
		h.Tick(now)
	}

	s := h.State()
	assert.True(t, s.Grid.Filled(3, grid.Rows-1))
	assert.True(t, s.Grid.Filled(6, grid.Rows-1))
	assert.Equal(t, piece.O, s.Current.Shape)
	assert.Equal(t, piece.T, s.Next.Shape)
	assert.Equal(t, 1, h.count(SoundDrop))
	assert.Zero(t, h.count(SoundSoftDrop))
}

func TestSoftDropSoundThrottle(t *testing.T) {
	h := newHarness(t)
	h.SetFastDrop(true)

	for now := 50 * time.Millisecond; now <= 300*time.Millisecond; now += 50 * time.Millisecond {
		h.Tick(now)
	}

	assert.Equal(t, 6, h.State().Current.Y)
	assert.Equal(t, 2, h.count(SoundSoftDrop))

	h.SetFastDrop(false)
	h.Tick(350 * time.Millisecond)
	assert.Equal(t, 6, h.State().Current.Y, "normal interval applies again")
}

// Scenario A: shifting left stops at the wall.
func TestMoveLeftUntilWall(t *testing.T) {
	h := newHarness(t)

	for range grid.Cols {
		h.Move(-1)
	}

	s := h.State()
	assert.Equal(t, 0, minX(*s.Current))
	assert.Len(t, h.states, SpawnX, "only successful moves notify")
	assert.Equal(t, SpawnX, h.count(SoundMove))

	h.Move(-1)
	assert.Equal(t, s, h.State())
}

func TestMoveRightUntilWall(t *testing.T) {
	h := newHarness(t)
	for range grid.Cols {
		h.Move(1)
	}
	cur := *h.State().Current
	maxX := 0
	for _, c := range cur.Cells() {
		maxX = max(maxX, c.X)
	}
	assert.Equal(t, grid.Cols-1, maxX)
}

func TestRotate(t *testing.T) {
	h := newHarness(t)

	h.Rotate()
	s := h.State()
	assert.Equal(t, 1, s.Current.Rotation)
	assert.Equal(t, 1, h.count(SoundRotate))

	for range 3 {
		h.Rotate()
	}
	assert.Equal(t, piece.New(piece.I, SpawnX, SpawnY), *h.State().Current)
}

func TestRotateRefusedWithoutKick(t *testing.T) {
	h := newHarness(t)
	h.Rotate()
	// Vertical I sits in column x+2; push it against the left wall.
	for range grid.Cols {
		h.Move(-1)
	}
	cur := *h.State().Current
	require.Equal(t, -2, cur.X)

	before := len(h.states)
	h.Rotate()
	assert.Equal(t, cur, *h.State().Current, "rotation out of bounds is refused")
	assert.Len(t, h.states, before)
}

// Scenario B: completing a single row.
func TestSingleLineClear(t *testing.T) {
	h := newHarness(t)
	h.fillRow(grid.Rows-1, 3, 4, 5, 6)

	h.HardDrop()

	s := h.State()
	assert.Equal(t, ClearingLines, s.Phase())
	assert.Equal(t, []int{grid.Rows - 1}, s.ClearingRows)
	assert.Nil(t, s.Current)
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, 1, s.Lines)
	assert.Equal(t, 1, s.LinesClearedTotal)
	assert.Equal(t, 1, s.LastLinesCleared)
	assert.Equal(t, []Sound{SoundHardDrop, SoundLineClear1}, h.sounds)

	// Intents are ignored during the clear window.
	h.Move(1)
	h.Rotate()
	h.HardDrop()
	h.Tick(10 * time.Second)
	assert.Equal(t, s, h.State())

	h.AdvanceClearAnimation(399 * time.Millisecond)
	assert.Equal(t, ClearingLines, h.Phase())

	h.AdvanceClearAnimation(ClearAnimationDuration)
	s = h.State()
	assert.Equal(t, Playing, s.Phase())
	assert.Empty(t, s.ClearingRows)
	assert.Zero(t, s.Grid.FilledCount())
	require.NotNil(t, s.Current)
	assert.Equal(t, piece.O, s.Current.Shape)
}

// Scenario C: four rows at once.
func TestTetris(t *testing.T) {
	h := newHarness(t)
	for y := grid.Rows - 4; y < grid.Rows; y++ {
		h.fillRow(y, 5)
	}
	h.state.Level = 3

	h.Rotate()
	h.HardDrop()

	s := h.State()
	assert.Equal(t, 4, s.LastLinesCleared)
	assert.Equal(t, 800*3, s.Score)
	assert.Equal(t, []int{19, 18, 17, 16}, s.ClearingRows)
	assert.Equal(t, 1, h.count(SoundLineClear4))
	assert.Zero(t, h.count(SoundDrop), "hard drop suppresses the lock cue")

	h.AdvanceClearAnimation(time.Second)
	after := h.State()
	assert.Zero(t, after.Grid.FilledCount())
}

func TestScoringTable(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for _, level := range []int{1, 2, 7} {
			h := newHarness(t)
			h.state.Level = level
			h.state.LinesClearedTotal = (level - 1) * LinesPerLevel
			for y := grid.Rows - n; y < grid.Rows; y++ {
				h.fillRow(y, 5)
			}
			h.Rotate()
			h.HardDrop()

			s := h.State()
			assert.Equal(t, LineScore[n]*level, s.Score, "n=%d level=%d", n, level)
			assert.Equal(t, n, s.LastLinesCleared)
			assert.Equal(t, 1, h.count(LineClearSound(n)))
		}
	}
}

func TestLevelUpCrossingOnce(t *testing.T) {
	h := newHarness(t)
	h.state.LinesClearedTotal = 8
	h.state.Lines = 8
	for y := grid.Rows - 4; y < grid.Rows; y++ {
		h.fillRow(y, 5)
	}

	h.Rotate()
	h.HardDrop()

	s := h.State()
	assert.Equal(t, 12, s.LinesClearedTotal)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 800, s.Score, "points use the level before the increase")
	assert.Equal(t, 1, h.count(SoundLevelUp))
}

func TestNoLevelUpBelowThreshold(t *testing.T) {
	h := newHarness(t)
	h.state.LinesClearedTotal = 5
	h.fillRow(grid.Rows-1, 3, 4, 5, 6)

	h.HardDrop()

	assert.Equal(t, 1, h.State().Level)
	assert.Zero(t, h.count(SoundLevelUp))
}

func TestLineClearSoundFallback(t *testing.T) {
	assert.Equal(t, SoundLineClear, LineClearSound(0))
	assert.Equal(t, SoundLineClear, LineClearSound(5))
	assert.Equal(t, SoundLineClear3, LineClearSound(3))
}

func TestGameOver(t *testing.T) {
	h := newHarness(t)
	for y := 2; y < grid.Rows; y++ {
		h.fillRow(y, 9)
	}

	h.HardDrop()

	s := h.State()
	assert.True(t, s.GameOver)
	assert.Equal(t, GameOver, s.Phase())
	assert.Nil(t, s.Current)
	assert.Equal(t, 1, h.count(SoundGameOver))

	frozen := h.State()
	notified := len(h.states)
	h.Move(-1)
	h.Rotate()
	h.HardDrop()
	h.Tick(time.Hour)
	h.AdvanceClearAnimation(time.Hour)
	assert.False(t, h.TogglePause())
	assert.Equal(t, frozen, h.State())
	assert.Len(t, h.states, notified)

	h.Restart()
	s = h.State()
	assert.Equal(t, Playing, s.Phase())
	assert.Zero(t, s.Grid.FilledCount())
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Score)
	assert.NotNil(t, s.Current)
}

func TestSpawnOnlyFailsOnOverlap(t *testing.T) {
	h := newHarness(t)
	// Row 1 is occupied outside the O piece's spawn columns.
	h.state.Grid.Set(0, 1, grid.Cell{Filled: true})
	h.state.Grid.Set(9, 1, grid.Cell{Filled: true})
	h.state.Current = nil

	assert.True(t, h.spawn())
	assert.False(t, h.state.GameOver)

	h.state.Grid.Set(SpawnX+1, 0, grid.Cell{Filled: true})
	assert.False(t, h.spawn())
	assert.True(t, h.state.GameOver)
}

func TestTogglePause(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.TogglePause())
	assert.Equal(t, Paused, h.Phase())

	before := h.State()
	h.Tick(time.Minute)
	h.Move(1)
	h.Rotate()
	h.HardDrop()
	assert.Equal(t, before, h.State())

	assert.True(t, h.TogglePause())
	assert.Equal(t, Playing, h.Phase())
}

func TestPauseHoldsClearAnimation(t *testing.T) {
	h := newHarness(t)
	h.fillRow(grid.Rows-1, 3, 4, 5, 6)
	h.HardDrop()
	require.True(t, h.TogglePause())

	h.AdvanceClearAnimation(time.Second)
	assert.Len(t, h.State().ClearingRows, 1)

	h.TogglePause()
	h.AdvanceClearAnimation(time.Second)
	assert.Empty(t, h.State().ClearingRows)
}

func TestHardDropParticles(t *testing.T) {
	h := newHarness(t)
	h.HardDrop()

	s := h.State()
	require.Len(t, s.Particles, HardDropParticles)
	for _, p := range s.Particles {
		assert.Equal(t, 1.0, p.Life)
		assert.InDelta(t, float64(grid.Rows-1)+0.5, p.Y, 1e-9)
		assert.GreaterOrEqual(t, p.X, 3.5)
		assert.LessOrEqual(t, p.X, 6.5)
	}

	h.UpdateParticles(ParticleLifetime / 2)
	mid := h.State().Particles
	require.Len(t, mid, HardDropParticles)
	assert.InDelta(t, 0.5, mid[0].Life, 1e-9)
	assert.Greater(t, mid[0].VY, s.Particles[0].VY, "gravity accelerates downward")

	h.UpdateParticles(ParticleLifetime)
	assert.Empty(t, h.State().Particles)

	notified := len(h.states)
	h.UpdateParticles(time.Second)
	assert.Len(t, h.states, notified, "no particles, no notification")
}

func TestParticlesDoNotAffectGame(t *testing.T) {
	h := newHarness(t)
	h.HardDrop()
	before := h.State()

	h.UpdateParticles(100 * time.Millisecond)
	after := h.State()

	assert.Equal(t, before.Grid, after.Grid)
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Current, after.Current)
}

func TestSnapshotIsolation(t *testing.T) {
	h := newHarness(t)
	h.fillRow(grid.Rows-1, 3, 4, 5, 6)
	h.HardDrop()

	s := h.State()
	s.ClearingRows[0] = 0
	s.Particles[0].X = -100
	s.Bag[0] = piece.L

	fresh := h.State()
	assert.Equal(t, []int{grid.Rows - 1}, fresh.ClearingRows)
	assert.NotEqual(t, -100.0, fresh.Particles[0].X)
	assert.Equal(t, piece.T, fresh.Bag[0])

	h.AdvanceClearAnimation(time.Second)
	assert.True(t, h.states[0].Grid.Filled(0, grid.Rows-1), "earlier snapshot still shows the full row")
}

func TestEveryMutationNotifiesOnce(t *testing.T) {
	h := newHarness(t)

	h.Move(1)
	assert.Len(t, h.states, 1)
	h.Rotate()
	assert.Len(t, h.states, 2)
	h.TogglePause()
	assert.Len(t, h.states, 3)
	h.TogglePause()
	assert.Len(t, h.states, 4)
	h.HardDrop()
	assert.Len(t, h.states, 5)
	h.Restart()
	assert.Len(t, h.states, 6)
}

func TestSoundCallbackReplaced(t *testing.T) {
	h := newHarness(t)
	var other []Sound
	h.SetSoundCallback(func(s Sound) { other = append(other, s) })

	h.Move(1)
	assert.Empty(t, h.sounds)
	assert.Equal(t, []Sound{SoundMove}, other)

	h.SetSoundCallback(nil)
	h.Move(1)
	assert.Len(t, other, 1)
}

func TestBagFairnessAcrossSpawns(t *testing.T) {
	var shapes []piece.Shape
	e := New(nil, WithSeed(42))
	shapes = append(shapes, e.State().Current.Shape)

	for len(shapes) < 7*6 {
		e.state.Grid = grid.New()
		e.HardDrop()
		if e.state.Current == nil {
			t.Fatalf("unexpected phase %s", e.Phase())
		}
		shapes = append(shapes, e.state.Current.Shape)
	}

	for i := 0; i < len(shapes); i += 7 {
		assert.ElementsMatch(t, piece.Shapes[:], shapes[i:i+7], "window starting at draw %d", i)
	}
}

func TestPieceClearingAndGameOverExclusive(t *testing.T) {
	h := newHarness(t)
	h.fillRow(grid.Rows-1, 3, 4, 5, 6)

	check := func() {
		s := h.State()
		exclusive := 0
		if s.Current != nil {
			exclusive++
		}
		if s.GameOver {
			exclusive++
		}
		if len(s.ClearingRows) > 0 {
			exclusive++
		}
		assert.Equal(t, 1, exclusive)
	}

	check()
	h.HardDrop()
	check()
	h.AdvanceClearAnimation(time.Second)
	check()
}

func TestSoundNames(t *testing.T) {
	for _, s := range Sounds {
		parsed, err := ParseSound(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseSound("boom")
	assert.Error(t, err)
}

func TestGhost(t *testing.T) {
	h := newHarness(t)
	ghost, ok := h.State().Ghost()
	require.True(t, ok)
	assert.Equal(t, grid.Rows-2, ghost.Y)

	h.fillRow(grid.Rows-1, 3, 4, 5, 6)
	h.HardDrop()
	_, ok = h.State().Ghost()
	assert.False(t, ok)
}
