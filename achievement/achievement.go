// Package achievement holds the unlock rules evaluated against engine snapshots.
package achievement

import (
	"slices"

	"github.com/plus3/blockfall/engine"
)

// Context is the subset of a snapshot the rules look at.
type Context struct {
	Score             int
	Level             int
	Lines             int
	LinesClearedTotal int
	LastLinesCleared  int
	GameOver          bool
}

// FromState extracts a Context from an engine snapshot.
func FromState(s engine.State) Context {
	return Context{
		Score:             s.Score,
		Level:             s.Level,
		Lines:             s.Lines,
		LinesClearedTotal: s.LinesClearedTotal,
		LastLinesCleared:  s.LastLinesCleared,
		GameOver:          s.GameOver,
	}
}

// Achievement is one unlockable rule. NameKey and DescKey are locale keys.
type Achievement struct {
	ID      string
	NameKey string
	DescKey string
	Icon    string
	Check   func(Context) bool
}

func rule(id, icon string, check func(Context) bool) Achievement {
	return Achievement{
		ID:      id,
		NameKey: "achievement." + id + ".name",
		DescKey: "achievement." + id + ".desc",
		Icon:    icon,
		Check:   check,
	}
}

// Rules is the full table in evaluation order.
var Rules = []Achievement{
	rule("first_clear", "🌟", func(c Context) bool { return c.LinesClearedTotal >= 1 }),
	rule("double", "📐", func(c Context) bool { return c.LastLinesCleared == 2 }),
	rule("triple", "🔥", func(c Context) bool { return c.LastLinesCleared == 3 }),
	rule("tetris", "🎯", func(c Context) bool { return c.LastLinesCleared == 4 }),
	rule("score_1k", "💯", func(c Context) bool { return c.Score >= 1000 }),
	rule("score_5k", "⭐", func(c Context) bool { return c.Score >= 5000 }),
	rule("score_10k", "🏆", func(c Context) bool { return c.Score >= 10000 }),
	rule("lines_25", "📊", func(c Context) bool { return c.LinesClearedTotal >= 25 }),
	rule("lines_50", "📈", func(c Context) bool { return c.LinesClearedTotal >= 50 }),
	rule("lines_100", "💎", func(c Context) bool { return c.LinesClearedTotal >= 100 }),
	rule("level_5", "🚀", func(c Context) bool { return c.Level >= 5 }),
	rule("level_10", "👑", func(c Context) bool { return c.Level >= 10 }),
	rule("player_of_the_year", "🏅", func(c Context) bool { return c.GameOver && c.Score == 0 }),
	rule("speedrun", "⚡", func(c Context) bool { return c.GameOver && c.LinesClearedTotal == 0 }),
}

// NewlyUnlocked returns the ids of rules that pass for ctx and are not in
// unlocked, in table order.
func NewlyUnlocked(ctx Context, unlocked []string) []string {
	var out []string
	for _, a := range Rules {
		if slices.Contains(unlocked, a.ID) {
			continue
		}
		if a.Check(ctx) {
			out = append(out, a.ID)
		}
	}
	return out
}

// Lookup finds a rule by id.
func Lookup(id string) (Achievement, bool) {
	for _, a := range Rules {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
