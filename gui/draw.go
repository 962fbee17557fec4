package gui

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/locale"
	"github.com/plus3/blockfall/piece"
	"github.com/plus3/blockfall/session"
	"github.com/plus3/blockfall/theme"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	CellSize = 30

	BoardX = 20
	BoardY = 20
	PanelX = BoardX + grid.Cols*CellSize + 20

	ScreenWidth  = PanelX + 180
	ScreenHeight = BoardY*2 + grid.Rows*CellSize

	flashPeriod = 100 * time.Millisecond
)

var (
	regularFace *text.GoTextFaceSource
	boldFace    *text.GoTextFaceSource
)

func init() {
	var err error
	if regularFace, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		log.Fatal(err)
	}
	if boldFace, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		log.Fatal(err)
	}
}

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

// Draw paints v onto screen.
func Draw(screen *ebiten.Image, v View) {
	screen.Fill(v.Palette.Background)
	drawBoard(screen, v)
	drawPanel(screen, v)
	drawBanner(screen, v)
}

func cellRect(x, y int) (float32, float32) {
	return float32(BoardX + x*CellSize), float32(BoardY + y*CellSize)
}

func drawBoard(screen *ebiten.Image, v View) {
	p := v.Palette
	s := v.State
	w, h := float32(grid.Cols*CellSize), float32(grid.Rows*CellSize)

	vector.DrawFilledRect(screen, BoardX, BoardY, w, h, p.Board, false)
	for x := 1; x < grid.Cols; x++ {
		fx, _ := cellRect(x, 0)
		vector.StrokeLine(screen, fx, BoardY, fx, BoardY+h, 1, p.GridLine, false)
	}
	for y := 1; y < grid.Rows; y++ {
		_, fy := cellRect(0, y)
		vector.StrokeLine(screen, BoardX, fy, BoardX+w, fy, 1, p.GridLine, false)
	}

	flashing := (v.Now-s.ClearStartedAt)/flashPeriod%2 == 0
	for y := range grid.Rows {
		clearing := s.Clearing(y)
		for x := range grid.Cols {
			cell := s.Grid.At(x, y)
			switch {
			case clearing && flashing:
				fillCell(screen, x, y, p.Flash, false)
			case cell.Filled:
				fillCell(screen, x, y, p.Cell(cell.Color), p.Glow)
			}
		}
	}

	if ghost, ok := s.Ghost(); ok {
		for _, c := range ghost.Cells() {
			if c.Y < 0 {
				continue
			}
			fx, fy := cellRect(c.X, c.Y)
			vector.StrokeRect(screen, fx+2, fy+2, CellSize-4, CellSize-4, 2, p.Ghost, false)
		}
	}
	if s.Current != nil {
		c := p.Piece(s.Current.Shape)
		for _, pt := range s.Current.Cells() {
			if pt.Y >= 0 {
				fillCell(screen, pt.X, pt.Y, c, p.Glow)
			}
		}
	}

	for _, pt := range s.Particles {
		c := pt.Color
		c.A = uint8(255 * max(0, min(1, pt.Life)))
		cx := float32(BoardX) + float32(pt.X)*CellSize
		cy := float32(BoardY) + float32(pt.Y)*CellSize
		vector.DrawFilledCircle(screen, cx, cy, float32(pt.Size)*CellSize/2, color.NRGBA{c.R, c.G, c.B, c.A}, true)
	}

	vector.StrokeRect(screen, BoardX-1, BoardY-1, w+2, h+2, 2, p.Accent, false)
}

func fillCell(screen *ebiten.Image, x, y int, c color.Color, glow bool) {
	fx, fy := cellRect(x, y)
	if glow {
		r, g, b, _ := c.RGBA()
		halo := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0x40}
		vector.DrawFilledRect(screen, fx-3, fy-3, CellSize+6, CellSize+6, halo, false)
	}
	vector.DrawFilledRect(screen, fx+1, fy+1, CellSize-2, CellSize-2, c, false)
}

func label(screen *ebiten.Image, s string, x, y, size float64, bold bool, c color.Color, align text.Align) {
	src := regularFace
	if bold {
		src = boldFace
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(screen, s, &text.GoTextFace{Source: src, Size: size}, op)
}

func drawPanel(screen *ebiten.Image, v View) {
	t := func(key string) string { return locale.T(v.Locale, key) }
	p := v.Palette
	s := v.State
	x := float64(PanelX)
	y := float64(BoardY)

	label(screen, t("menu.title"), x, y, 22, true, p.Accent, text.AlignStart)
	y += 40

	label(screen, t("game.next"), x, y, 16, false, p.Text, text.AlignStart)
	y += 24
	if s.Next != nil {
		drawPreview(screen, *s.Next, float32(x), float32(y), p)
	}
	y += 80

	for _, row := range []struct {
		key   string
		value int
	}{
		{"game.score", s.Score},
		{"game.level", s.Level},
		{"game.lines", s.Lines},
		{"game.highScore", max(v.Best, s.Score)},
	} {
		label(screen, t(row.key), x, y, 14, false, p.Text, text.AlignStart)
		label(screen, fmt.Sprint(row.value), x, y+18, 20, true, p.Accent, text.AlignStart)
		y += 50
	}

	if v.SoundOn {
		label(screen, t("game.soundOn"), x, y, 12, false, p.Text, text.AlignStart)
	} else {
		label(screen, t("game.soundOff"), x, y, 12, false, p.Text, text.AlignStart)
	}
	y += 30

	for _, toast := range v.Toasts {
		a := toast.Achievement
		label(screen, t("achievement.unlocked"), x, y, 12, true, p.Accent, text.AlignStart)
		label(screen, a.Icon+" "+t(a.NameKey), x, y+16, 12, false, p.Text, text.AlignStart)
		y += 40
	}
}

// drawPreview draws a piece at half scale with its top row at (x, y).
func drawPreview(screen *ebiten.Image, p piece.Piece, x, y float32, palette theme.Palette) {
	const size = CellSize * 2 / 3
	cells := p.At(0, 0).Cells()
	minY := cells[0].Y
	for _, c := range cells {
		minY = min(minY, c.Y)
	}
	fill := palette.Piece(p.Shape)
	for _, c := range cells {
		cx := x + float32(c.X*size)
		cy := y + float32((c.Y-minY)*size)
		vector.DrawFilledRect(screen, cx+1, cy+1, size-2, size-2, fill, false)
	}
}

func drawBanner(screen *ebiten.Image, v View) {
	t := func(key string) string { return locale.T(v.Locale, key) }
	p := v.Palette
	phase := v.State.Phase()
	if phase != engine.Paused && phase != engine.GameOver {
		return
	}

	w, h := float32(grid.Cols*CellSize), float32(grid.Rows*CellSize)
	vector.DrawFilledRect(screen, BoardX, BoardY, w, h, color.NRGBA{0, 0, 0, 0xb0}, false)

	cx := float64(BoardX) + float64(w)/2
	cy := float64(BoardY) + float64(h)/2 - 40
	if phase == engine.Paused {
		label(screen, t("game.paused"), cx, cy, 28, true, p.Accent, text.AlignCenter)
		label(screen, t("game.resume")+" [P]", cx, cy+44, 14, false, p.Text, text.AlignCenter)
		return
	}

	label(screen, t("gameover.title"), cx, cy, 28, true, p.Accent, text.AlignCenter)
	label(screen, locale.Tf(v.Locale, "gameover.score", v.State.Score), cx, cy+44, 16, false, p.Text, text.AlignCenter)
	if v.NewBest {
		label(screen, t("gameover.highScore"), cx, cy+70, 16, true, p.Accent, text.AlignCenter)
	}
	label(screen, t("gameover.restart"), cx, cy+104, 14, false, p.Text, text.AlignCenter)
}
