// Package term draws the playfield in a terminal with tcell. Canvas pixels
// are mapped onto character cells of CellWidth×CellHeight pixels.
package term

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avatars/arena"
)

// Canvas pixels per terminal cell. Cells are about twice as tall as wide.
const (
	CellWidth  = 8
	CellHeight = 16
)

var facingGlyphs = map[arena.Direction]rune{
	arena.Down:  'v',
	arena.Right: '>',
	arena.Left:  '<',
	arena.Up:    '^',
}

// Surface implements arena.Surface on a tcell.Screen. Nothing reaches the
// terminal until Present.
type Surface struct {
	screen     tcell.Screen
	background tcell.Style
}

var (
	_ arena.Surface   = (*Surface)(nil)
	_ arena.Presenter = (*Surface)(nil)
)

func NewSurface(screen tcell.Screen) *Surface {
	return &Surface{
		screen:     screen,
		background: tcell.StyleDefault.Background(tcell.FromImageColor(arena.Background)),
	}
}

// CanvasSize returns the canvas pixel size that fills the terminal.
func (s *Surface) CanvasSize() arena.Canvas {
	cols, rows := s.screen.Size()
	return arena.Canvas{Width: float64(cols * CellWidth), Height: float64(rows * CellHeight), PixelRatio: 1}
}

func (s *Surface) Clear() {
	s.screen.Fill(' ', s.background)
}

func (s *Surface) Present() {
	s.screen.Show()
}

func (s *Surface) FillCircle(x, y, radius float64, c color.Color) {
	style := s.background.Foreground(tcell.FromImageColor(c))
	s.eachCellIn(x, y, radius, func(col, row int) {
		s.screen.SetContent(col, row, '█', nil, style)
	})
}

// DrawSprite cannot show images, so it draws a grey disc with a glyph for
// the sheet row's facing.
func (s *Surface) DrawSprite(sheet string, src image.Rectangle, x, y, w, h float64) {
	cx, cy, r := x+w/2, y+h/2, min(w, h)/2
	s.FillCircle(cx, cy, r, color.Gray{Y: 0x80})

	if src.Dy() > 0 {
		if glyph, ok := facingGlyphs[arena.Direction(src.Min.Y/src.Dy())]; ok {
			style := s.background.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
			col, row := cell(cx, cy)
			s.screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

func (s *Surface) DrawLabel(text string, x, y float64, c color.Color) {
	style := s.background.Foreground(tcell.FromImageColor(c))
	runes := []rune(text)
	col, row := cell(x, y)
	col -= len(runes) / 2
	for i, r := range runes {
		s.screen.SetContent(col+i, row, r, nil, style)
	}
}

// eachCellIn calls fn for every cell whose centre lies inside the circle.
// A circle smaller than a cell still covers the cell holding its centre.
func (s *Surface) eachCellIn(x, y, radius float64, fn func(col, row int)) {
	minCol, minRow := cell(x-radius, y-radius)
	maxCol, maxRow := cell(x+radius, y+radius)

	covered := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx := (float64(col) + 0.5) * CellWidth
			cy := (float64(row) + 0.5) * CellHeight
			if math.Hypot(cx-x, cy-y) <= radius {
				fn(col, row)
				covered = true
			}
		}
	}
	if !covered {
		fn(cell(x, y))
	}
}

func cell(x, y float64) (col, row int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}
