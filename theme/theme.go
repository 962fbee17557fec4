// Package theme defines the colour palettes hosts render the board with.
package theme

import (
	"fmt"
	"image/color"

	"github.com/plus3/blockfall/piece"
)

// ID names a palette.
type ID string

const (
	Classic ID = "classic"
	Neon    ID = "neon"
	Retro   ID = "retro"
)

// IDs lists every palette in menu order.
var IDs = []ID{Classic, Neon, Retro}

// Parse validates a palette name.
func Parse(name string) (ID, error) {
	for _, id := range IDs {
		if string(id) == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q", name)
}

// Palette is the full set of colours for one theme. Translucent overlays are
// non-premultiplied.
type Palette struct {
	Background color.RGBA
	Board      color.NRGBA
	GridLine   color.NRGBA
	Ghost      color.NRGBA
	Flash      color.NRGBA
	Text       color.RGBA
	Accent     color.RGBA
	Glow       bool
	Pieces     map[piece.Shape]color.RGBA
}

// Piece returns the fill colour for a shape, falling back to its canonical colour.
func (p Palette) Piece(s piece.Shape) color.RGBA {
	if c, ok := p.Pieces[s]; ok {
		return c
	}
	return s.Color()
}

// Cell maps a locked cell's canonical colour to this palette.
func (p Palette) Cell(c color.RGBA) color.RGBA {
	for _, s := range piece.Shapes {
		if s.Color() == c {
			return p.Piece(s)
		}
	}
	return c
}

func canonical() map[piece.Shape]color.RGBA {
	m := make(map[piece.Shape]color.RGBA, len(piece.Shapes))
	for _, s := range piece.Shapes {
		m[s] = s.Color()
	}
	return m
}

var palettes = map[ID]Palette{
	Classic: {
		Background: color.RGBA{0x1a, 0x1a, 0x2e, 0xff},
		Board:      color.NRGBA{0, 0, 0, 0x4c},
		GridLine:   color.NRGBA{0xff, 0xff, 0xff, 0x1a},
		Ghost:      color.NRGBA{0xff, 0xff, 0xff, 0x33},
		Flash:      color.NRGBA{0xff, 0xff, 0xff, 0xe6},
		Text:       color.RGBA{0xee, 0xee, 0xee, 0xff},
		Accent:     color.RGBA{0xf0, 0xa0, 0x00, 0xff},
		Pieces:     canonical(),
	},
	Neon: {
		Background: color.RGBA{0x05, 0x05, 0x14, 0xff},
		Board:      color.NRGBA{0, 0x05, 0x0f, 0x80},
		GridLine:   color.NRGBA{0, 0xff, 0xff, 0x26},
		Ghost:      color.NRGBA{0, 0xff, 0xff, 0x40},
		Flash:      color.NRGBA{0, 0xff, 0xff, 0xf2},
		Text:       color.RGBA{0x00, 0xff, 0xff, 0xff},
		Accent:     color.RGBA{0xff, 0x00, 0xff, 0xff},
		Glow:       true,
		Pieces: map[piece.Shape]color.RGBA{
			piece.I: {0x00, 0xff, 0xff, 0xff},
			piece.O: {0xff, 0xff, 0x00, 0xff},
			piece.T: {0xff, 0x00, 0xff, 0xff},
			piece.S: {0x39, 0xff, 0x14, 0xff},
			piece.Z: {0xff, 0x07, 0x3a, 0xff},
			piece.J: {0x1f, 0x51, 0xff, 0xff},
			piece.L: {0xff, 0x5f, 0x1f, 0xff},
		},
	},
	Retro: {
		Background: color.RGBA{0x14, 0x14, 0x14, 0xff},
		Board:      color.NRGBA{0x14, 0x14, 0x14, 0x99},
		GridLine:   color.NRGBA{0xb4, 0xb4, 0xb4, 0x33},
		Ghost:      color.NRGBA{0xc8, 0xc8, 0x64, 0x4c},
		Flash:      color.NRGBA{0xff, 0xff, 0xc8, 0xe6},
		Text:       color.RGBA{0xc8, 0xc8, 0x64, 0xff},
		Accent:     color.RGBA{0xe0, 0x80, 0x40, 0xff},
		Pieces: map[piece.Shape]color.RGBA{
			piece.I: {0x6a, 0xa8, 0xa8, 0xff},
			piece.O: {0xc8, 0xb4, 0x5a, 0xff},
			piece.T: {0x8c, 0x64, 0xa0, 0xff},
			piece.S: {0x78, 0xa0, 0x5a, 0xff},
			piece.Z: {0xb4, 0x5a, 0x50, 0xff},
			piece.J: {0x5a, 0x6e, 0xa0, 0xff},
			piece.L: {0xc8, 0x82, 0x50, 0xff},
		},
	},
}

// Get returns the palette for id, or the classic palette for an unknown id.
func Get(id ID) Palette {
	if p, ok := palettes[id]; ok {
		return p
	}
	return palettes[Classic]
}
