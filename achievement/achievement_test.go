package achievement

import (
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewlyUnlocked(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		unlocked []string
		want     []string
	}{
		{"fresh game", Context{Level: 1}, nil, nil},
		{"first single", Context{Level: 1, Score: 100, LinesClearedTotal: 1, LastLinesCleared: 1}, nil, []string{"first_clear"}},
		{"tetris", Context{Level: 1, Score: 800, LinesClearedTotal: 4, LastLinesCleared: 4}, nil, []string{"first_clear", "tetris"}},
		{"tetris already known", Context{Level: 1, Score: 800, LinesClearedTotal: 4, LastLinesCleared: 4}, []string{"first_clear"}, []string{"tetris"}},
		{"big score", Context{Level: 10, Score: 12000, LinesClearedTotal: 100}, nil,
			[]string{"first_clear", "score_1k", "score_5k", "score_10k", "lines_25", "lines_50", "lines_100", "level_5", "level_10"}},
		{"topped out empty", Context{Level: 1, GameOver: true}, nil, []string{"player_of_the_year", "speedrun"}},
		{"topped out with points", Context{Level: 1, GameOver: true, Score: 100, LinesClearedTotal: 1}, []string{"first_clear"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewlyUnlocked(tt.ctx, tt.unlocked))
		})
	}
}

func TestRulesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Rules {
		assert.False(t, seen[a.ID], a.ID)
		seen[a.ID] = true
		assert.NotEmpty(t, a.Icon)
		assert.Equal(t, "achievement."+a.ID+".name", a.NameKey)
	}
	assert.Len(t, Rules, 14)
}

func TestLookup(t *testing.T) {
	a, ok := Lookup("speedrun")
	require.True(t, ok)
	assert.Equal(t, "⚡", a.Icon)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestFromState(t *testing.T) {
	s := engine.State{Score: 300, Level: 2, Lines: 12, LinesClearedTotal: 12, LastLinesCleared: 2, GameOver: true}
	assert.Equal(t, Context{Score: 300, Level: 2, Lines: 12, LinesClearedTotal: 12, LastLinesCleared: 2, GameOver: true}, FromState(s))
}
