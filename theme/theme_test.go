package theme

import (
	"testing"

	"github.com/plus3/blockfall/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, id := range IDs {
		got, err := Parse(string(id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
	_, err := Parse("vaporwave")
	assert.Error(t, err)
}

func TestEveryPaletteColoursEveryShape(t *testing.T) {
	for _, id := range IDs {
		p := Get(id)
		for _, s := range piece.Shapes {
			_, ok := p.Pieces[s]
			assert.True(t, ok, "%s misses %s", id, s)
		}
	}
}

func TestClassicUsesCanonicalColours(t *testing.T) {
	p := Get(Classic)
	for _, s := range piece.Shapes {
		assert.Equal(t, s.Color(), p.Piece(s))
		assert.Equal(t, s.Color(), p.Cell(s.Color()))
	}
}

func TestCellMapping(t *testing.T) {
	neon := Get(Neon)
	assert.Equal(t, neon.Pieces[piece.T], neon.Cell(piece.T.Color()))
	assert.True(t, neon.Glow)
}

func TestUnknownFallsBackToClassic(t *testing.T) {
	assert.Equal(t, Get(Classic).Background, Get("nope").Background)
}
