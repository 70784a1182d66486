package arena

import (
	"image"
	"image/color"

	"golang.org/x/image/colornames"
)

// DefaultSheet names the avatar sprite sheet surfaces are expected to know.
const DefaultSheet = "player"

// LabelOffset is how far below an avatar's edge its label baseline sits.
const LabelOffset = 20

var (
	LabelColor     color.Color = colornames.Black
	AdversaryColor color.Color = colornames.Crimson
	Background     color.Color = colornames.White
)

// Surface is a 2D drawing target in canvas pixel coordinates.
type Surface interface {
	// Clear wipes the whole surface.
	Clear()
	FillCircle(x, y, radius float64, c color.Color)
	// DrawSprite copies src from the named sheet into the w×h box whose
	// top-left corner is (x, y).
	DrawSprite(sheet string, src image.Rectangle, x, y, w, h float64)
	// DrawLabel draws text horizontally centred on x with its baseline at y.
	DrawLabel(text string, x, y float64, c color.Color)
}

// Presenter is implemented by surfaces that buffer a frame until it is
// complete.
type Presenter interface {
	Present()
}

// SpriteSource returns the sheet cell for the given frame and facing.
func SpriteSource(frameSize, frame int, facing Direction) image.Rectangle {
	x := frame * frameSize
	y := facing.Row() * frameSize
	return image.Rect(x, y, x+frameSize, y+frameSize)
}

// NullSurface discards everything drawn on it.
type NullSurface struct{}

func (NullSurface) Clear()                                                                 {}
func (NullSurface) FillCircle(x, y, radius float64, c color.Color)                         {}
func (NullSurface) DrawSprite(string, image.Rectangle, float64, float64, float64, float64) {}
func (NullSurface) DrawLabel(text string, x, y float64, c color.Color)                     {}
