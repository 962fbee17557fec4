package loop

import "github.com/plus3/blockfall/engine"

// TickSystem applies gravity.
type TickSystem struct {
	Engine *engine.Engine
}

func (s *TickSystem) Execute(frame *Frame) {
	s.Engine.Tick(frame.Now)
}

// ParticleSystem integrates cosmetic particles by the frame delta.
type ParticleSystem struct {
	Engine *engine.Engine
}

func (s *ParticleSystem) Execute(frame *Frame) {
	if frame.Delta > 0 {
		s.Engine.UpdateParticles(frame.Delta)
	}
}

// ClearAnimationSystem finishes line clears once their window has elapsed.
type ClearAnimationSystem struct {
	Engine *engine.Engine
}

func (s *ClearAnimationSystem) Execute(frame *Frame) {
	if s.Engine.Phase() == engine.ClearingLines {
		s.Engine.AdvanceClearAnimation(frame.Now)
	}
}

// EngineSystems returns the per-frame engine steps in the order hosts run them.
func EngineSystems(e *engine.Engine) []System {
	return []System{
		&TickSystem{Engine: e},
		&ParticleSystem{Engine: e},
		&ClearAnimationSystem{Engine: e},
	}
}
