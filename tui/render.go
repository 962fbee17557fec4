package tui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/theme"
)

const (
	// CellWidth is how many terminal columns one board cell spans.
	CellWidth = 2

	BoardLeft = 1
	BoardTop  = 1
	PanelLeft = BoardLeft + grid.Cols*CellWidth + 3

	// Width and Height are the smallest terminal that fits the whole layout.
	Width  = PanelLeft + 24
	Height = BoardTop + grid.Rows + 1

	flashPeriod = 100 * time.Millisecond
)

// View is everything one frame shows.
type View struct {
	State   engine.State
	Palette theme.Palette
	Locale  locale.ID
	Best    int
	NewBest bool
	SoundOn bool
	Toasts  []session.Toast
	Now     time.Duration
}

// Renderer draws views onto a terminal screen.
type Renderer struct {
	Screen tcell.Screen
}

// over composites a translucent overlay onto an opaque colour.
func over(top color.NRGBA, under color.RGBA) color.RGBA {
	a := uint32(top.A)
	mix := func(t, u uint8) uint8 {
		return uint8((uint32(t)*a + uint32(u)*(255-a)) / 255)
	}
	return color.RGBA{mix(top.R, under.R), mix(top.G, under.G), mix(top.B, under.B), 0xff}
}

func rgb(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// Draw repaints the whole screen. It does not call Show.
func (r *Renderer) Draw(v View) {
	p := v.Palette
	base := tcell.StyleDefault.Background(rgb(p.Background)).Foreground(rgb(p.Text))

	r.Screen.SetStyle(base)
	r.Screen.Clear()

	r.drawBoard(v, base)
	r.drawPanel(v, base)
	r.drawBanner(v, base)
}

func (r *Renderer) drawBoard(v View, base tcell.Style) {
	p := v.Palette
	s := v.State
	frame := base.Foreground(rgb(p.GridLine))

	right := BoardLeft + grid.Cols*CellWidth
	bottom := BoardTop + grid.Rows
	for x := BoardLeft; x < right; x++ {
		r.Screen.SetContent(x, BoardTop-1, '─', nil, frame)
		r.Screen.SetContent(x, bottom, '─', nil, frame)
	}
	for y := BoardTop; y < bottom; y++ {
		r.Screen.SetContent(BoardLeft-1, y, '│', nil, frame)
		r.Screen.SetContent(right, y, '│', nil, frame)
	}
	r.Screen.SetContent(BoardLeft-1, BoardTop-1, '┌', nil, frame)
	r.Screen.SetContent(right, BoardTop-1, '┐', nil, frame)
	r.Screen.SetContent(BoardLeft-1, bottom, '└', nil, frame)
	r.Screen.SetContent(right, bottom, '┘', nil, frame)

	board := over(p.Board, p.Background)
	empty := base.Background(rgb(board)).Foreground(rgb(over(p.GridLine, board)))
	flashing := (v.Now-s.ClearStartedAt)/flashPeriod%2 == 0

	for y := range grid.Rows {
		clearing := s.Clearing(y)
		for x := range grid.Cols {
			cell := s.Grid.At(x, y)
			switch {
			case clearing && flashing:
				r.cell(x, y, "  ", empty.Background(rgb(over(p.Flash, board))))
			case cell.Filled:
				r.cell(x, y, "  ", empty.Background(rgb(p.Cell(cell.Color))))
			default:
				r.cell(x, y, " .", empty)
			}
		}
	}

	if ghost, ok := s.Ghost(); ok {
		style := empty.Foreground(rgb(over(p.Ghost, board)))
		for _, c := range ghost.Cells() {
			r.cell(c.X, c.Y, "[]", style)
		}
	}
	if s.Current != nil {
		style := empty.Background(rgb(p.Piece(s.Current.Shape)))
		for _, c := range s.Current.Cells() {
			r.cell(c.X, c.Y, "  ", style)
		}
	}

	spark := empty.Foreground(rgb(p.Accent))
	for _, pt := range s.Particles {
		x, y := int(pt.X), int(pt.Y)
		if x < 0 || x >= grid.Cols || y < 0 || y >= grid.Rows {
			continue
		}
		if s.Grid.Filled(x, y) {
			continue
		}
		r.Screen.SetContent(BoardLeft+x*CellWidth, BoardTop+y, '*', nil, spark)
	}
}

// cell paints board cell (x, y); rows above the board are skipped.
func (r *Renderer) cell(x, y int, glyph string, style tcell.Style) {
	if y < 0 || y >= grid.Rows || x < 0 || x >= grid.Cols {
		return
	}
	r.text(BoardLeft+x*CellWidth, BoardTop+y, glyph, style)
}

func (r *Renderer) drawPanel(v View, base tcell.Style) {
	t := func(key string) string { return locale.T(v.Locale, key) }
	accent := base.Foreground(rgb(v.Palette.Accent)).Bold(true)
	s := v.State

	y := BoardTop
	r.text(PanelLeft, y, t("menu.title"), accent)
	y += 2

	r.text(PanelLeft, y, t("game.next"), base)
	if s.Next != nil {
		r.preview(PanelLeft, y+1, *s.Next, v.Palette, base)
	}
	y += 6

	for _, row := range []struct {
		key   string
		value int
	}{
		{"game.score", s.Score},
		{"game.level", s.Level},
		{"game.lines", s.Lines},
		{"game.highScore", max(v.Best, s.Score)},
	} {
		r.text(PanelLeft, y, t(row.key), base)
		r.text(PanelLeft+12, y, fmt.Sprint(row.value), accent)
		y++
	}
	y++

	if v.SoundOn {
		r.text(PanelLeft, y, t("game.soundOn"), base)
	} else {
		r.text(PanelLeft, y, t("game.soundOff"), base)
	}
	y += 2

	for _, toast := range v.Toasts {
		a := toast.Achievement
		r.text(PanelLeft, y, t("achievement.unlocked"), accent)
		r.text(PanelLeft, y+1, a.Icon+" "+t(a.NameKey), base)
		y += 3
	}
}

// preview draws a piece in its own 4x4 box, top-left aligned.
func (r *Renderer) preview(left, top int, p piece.Piece, palette theme.Palette, base tcell.Style) {
	style := base.Background(rgb(palette.Piece(p.Shape)))
	origin := p.At(0, 0)
	minY := grid.Rows
	for _, c := range origin.Cells() {
		minY = min(minY, c.Y)
	}
	for _, c := range origin.Cells() {
		r.text(left+c.X*CellWidth, top+c.Y-minY, "  ", style)
	}
}

func (r *Renderer) drawBanner(v View, base tcell.Style) {
	t := func(key string) string { return locale.T(v.Locale, key) }
	accent := base.Foreground(rgb(v.Palette.Accent)).Bold(true)
	mid := BoardTop + grid.Rows/2

	switch v.State.Phase() {
	case engine.Paused:
		r.centered(mid, t("game.paused"), accent)
		r.centered(mid+2, t("game.resume")+" [P]", base)
	case engine.GameOver:
		r.centered(mid-1, t("gameover.title"), accent)
		r.centered(mid+1, locale.Tf(v.Locale, "gameover.score", v.State.Score), base)
		if v.NewBest {
			r.centered(mid+2, t("gameover.highScore"), accent)
		}
		r.centered(mid+4, t("gameover.restart"), base)
	}
}

// centered writes s across the middle of the board.
func (r *Renderer) centered(y int, s string, style tcell.Style) {
	width := grid.Cols * CellWidth
	x := BoardLeft + max(0, (width-runewidth.StringWidth(s))/2)
	r.text(x, y, s, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.Screen.SetContent(x, y, ch, nil, style)
		x += max(1, runewidth.RuneWidth(ch))
	}
	return x
}
