// Package ebiten draws the playfield into an Ebiten window.
package ebiten

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/avatars/arena"
	"golang.org/x/image/font/basicfont"
)

// Surface implements arena.Surface on an *ebiten.Image. Point it at the
// frame's screen with Target before each draw.
type Surface struct {
	screen *ebiten.Image
	sheets map[string]*ebiten.Image
	face   *text.GoXFace
}

var _ arena.Surface = (*Surface)(nil)

func NewSurface() *Surface {
	return &Surface{
		sheets: make(map[string]*ebiten.Image),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// SetSheet registers a sprite sheet under name.
func (s *Surface) SetSheet(name string, sheet *ebiten.Image) {
	s.sheets[name] = sheet
}

// Target sets the image the next draw calls go to.
func (s *Surface) Target(screen *ebiten.Image) {
	s.screen = screen
}

func (s *Surface) Clear() {
	s.screen.Fill(arena.Background)
}

func (s *Surface) FillCircle(x, y, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.screen, float32(x), float32(y), float32(radius), c, true)
}

// DrawSprite falls back to a grey circle when the sheet is unknown.
func (s *Surface) DrawSprite(sheet string, src image.Rectangle, x, y, w, h float64) {
	img, ok := s.sheets[sheet]
	if !ok {
		s.FillCircle(x+w/2, y+h/2, min(w, h)/2, color.Gray{Y: 0x80})
		return
	}
	frame := img.SubImage(src).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	s.screen.DrawImage(frame, op)
}

func (s *Surface) DrawLabel(label string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-s.face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(s.screen, label, s.face, op)
}
