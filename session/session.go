// Package session is the glue every host shares: it owns the engine and its
// scheduler, turns intents into engine calls, plays cues, keeps records and
// achievements in the store and forwards snapshots to spectators.
package session

import (
	"log"
	"slices"
	"sync"
	"time"

	"github.com/plus3/blockfall/achievement"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/sound"
	"github.com/plus3/blockfall/store"
	"github.com/plus3/blockfall/theme"
)

// ToastDuration is how long an unlock notice stays on screen.
const ToastDuration = 3 * time.Second

// Publisher receives every snapshot, e.g. the spectator server.
type Publisher interface {
	Publish(engine.State)
	ObserveSound(engine.Sound)
}

// Toast announces an achievement unlocked during play.
type Toast struct {
	Achievement achievement.Achievement
	At          time.Duration
}

type Options struct {
	Store *store.Store
	Sink  sound.Sink
	// Publisher may be nil.
	Publisher Publisher
	// Mute silences cues for this session without touching the stored preference.
	Mute          bool
	EngineOptions []engine.Option
	// Now supplies wall-clock time for score dates.
	Now func() time.Time
}

// Session is not safe for concurrent use except for Queue.
type Session struct {
	Engine    *engine.Engine
	Scheduler *loop.Scheduler

	store     *store.Store
	sink      sound.Sink
	publisher Publisher
	mute      bool
	wallClock func() time.Time

	mu      sync.Mutex
	pending []Intent

	latest    engine.State
	submitted bool
	newBest   bool
	toasts    []Toast
	quit      bool
}

func New(opts Options) *Session {
	s := &Session{
		store:     opts.Store,
		sink:      opts.Sink,
		publisher: opts.Publisher,
		mute:      opts.Mute,
		wallClock: opts.Now,
	}
	if s.store == nil {
		s.store = store.Memory()
	}
	if s.sink == nil {
		s.sink = sound.Nop{}
	}
	if s.wallClock == nil {
		s.wallClock = time.Now
	}

	s.Engine = engine.New(s.onChange, opts.EngineOptions...)
	s.Engine.SetSoundCallback(s.onSound)
	s.latest = s.Engine.State()

	systems := append([]loop.System{&InputSystem{Session: s}}, loop.EngineSystems(s.Engine)...)
	s.Scheduler = loop.NewScheduler(systems...)
	return s
}

// Start announces the first game and publishes its initial snapshot.
func (s *Session) Start() {
	s.cue(engine.SoundStart)
	s.publish(s.latest)
}

// Queue records an intent for the next frame. It is safe to call from any
// goroutine.
func (s *Session) Queue(i Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, i)
}

func (s *Session) drain() []Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.pending
	s.pending = nil
	return out
}

// Frame advances everything to host time now.
func (s *Session) Frame(now time.Duration) {
	s.Scheduler.Once(now)
}

// Apply executes an intent immediately.
func (s *Session) Apply(i Intent) {
	e := s.Engine
	switch i {
	case IntentLeft:
		e.Move(-1)
	case IntentRight:
		e.Move(1)
	case IntentRotate:
		e.Rotate()
	case IntentSoftDropOn:
		e.SetFastDrop(true)
	case IntentSoftDropOff:
		e.SetFastDrop(false)
	case IntentHardDrop:
		e.HardDrop()
	case IntentPause:
		if e.TogglePause() {
			s.cue(engine.SoundClick)
		}
	case IntentRestart:
		s.submitted = false
		s.newBest = false
		e.Restart()
		s.cue(engine.SoundStart)
	case IntentToggleSound:
		s.store.SetSoundEnabled(!s.store.SoundEnabled())
		s.save()
		s.cue(engine.SoundClick)
	case IntentNextTheme:
		next := cycle(theme.IDs, s.store.Theme())
		if err := s.store.SetTheme(string(next)); err == nil {
			s.save()
		}
	case IntentNextLocale:
		next := cycle(locale.IDs, s.store.Locale())
		if err := s.store.SetLocale(string(next)); err == nil {
			s.save()
		}
	case IntentQuit:
		s.quit = true
	}
}

func cycle[T comparable](ids []T, current T) T {
	i := slices.Index(ids, current)
	return ids[(i+1)%len(ids)]
}

// State returns the latest snapshot.
func (s *Session) State() engine.State {
	return s.latest
}

// Quit reports whether the player asked to leave.
func (s *Session) Quit() bool {
	return s.quit
}

// NewBest reports whether the finished game set a new high score.
func (s *Session) NewBest() bool {
	return s.newBest
}

func (s *Session) Store() *store.Store {
	return s.store
}

// SoundOn reports whether cues are audible.
func (s *Session) SoundOn() bool {
	return !s.mute && s.store.SoundEnabled()
}

// Toasts returns the unlock notices still visible at host time now.
func (s *Session) Toasts(now time.Duration) []Toast {
	live := s.toasts[:0]
	for _, t := range s.toasts {
		if now-t.At < ToastDuration {
			live = append(live, t)
		}
	}
	s.toasts = live
	return slices.Clone(live)
}

func (s *Session) onChange(st engine.State) {
	s.latest = st
	s.checkAchievements(st)
	if st.GameOver && !s.submitted {
		s.submitted = true
		s.newBest = s.store.SubmitScore(st.Score, st.Level, st.Lines, s.wallClock())
		s.save()
	}
	s.publish(st)
}

func (s *Session) checkAchievements(st engine.State) {
	ids := achievement.NewlyUnlocked(achievement.FromState(st), s.store.Unlocked())
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if !s.store.Unlock(id) {
			continue
		}
		a, _ := achievement.Lookup(id)
		s.toasts = append(s.toasts, Toast{Achievement: a, At: s.Scheduler.Now()})
		log.Printf("achievement unlocked: %s", id)
	}
	s.save()
}

func (s *Session) onSound(ev engine.Sound) {
	s.cue(ev)
}

func (s *Session) cue(ev engine.Sound) {
	if s.publisher != nil {
		s.publisher.ObserveSound(ev)
	}
	if s.SoundOn() {
		s.sink.Play(ev)
	}
}

func (s *Session) publish(st engine.State) {
	if s.publisher != nil {
		s.publisher.Publish(st)
	}
}

func (s *Session) save() {
	if err := s.store.Save(); err != nil {
		log.Printf("saving %s: %v", s.store.Path(), err)
	}
}

// InputSystem applies queued intents once the engine systems have run.
type InputSystem struct {
	Session *Session
}

func (sys *InputSystem) Execute(frame *loop.Frame) {
	for _, i := range sys.Session.drain() {
		frame.Commands.Defer(func() { sys.Session.Apply(i) })
	}
}
