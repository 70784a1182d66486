package ebiten

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/avatars/arena"
	"golang.org/x/image/colornames"
)

// LoadSheet reads a sprite sheet image from disk.
func LoadSheet(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load sprite sheet %s: %w", path, err)
	}
	return img, nil
}

// PlaceholderSheet draws a sheet with the standard layout: one row per
// arena.Direction, frameCount columns. Each cell is a body with an eye
// looking in the row's direction that bobs from frame to frame.
func PlaceholderSheet(frameSize, frameCount int) *ebiten.Image {
	sheet := ebiten.NewImage(frameSize*frameCount, frameSize*len(arena.Directions))
	size := float32(frameSize)

	for _, d := range arena.Directions {
		dx, dy := d.Delta()
		for frame := range frameCount {
			cx := float32(frame*frameSize) + size/2
			cy := float32(d.Row()*frameSize) + size/2
			bob := float32(frame%2) * size / 32

			vector.DrawFilledCircle(sheet, cx, cy+bob, size*0.42, colornames.Steelblue, true)
			vector.StrokeCircle(sheet, cx, cy+bob, size*0.42, size/32, colornames.Midnightblue, true)

			ex := cx + float32(dx)*size*0.2
			ey := cy + bob + float32(dy)*size*0.2
			vector.DrawFilledCircle(sheet, ex, ey, size*0.1, color.White, true)
			vector.DrawFilledCircle(sheet, ex+float32(dx)*size*0.04, ey+float32(dy)*size*0.04, size*0.05, colornames.Black, true)
		}
	}
	return sheet
}
