package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/config"
	debugui_ebiten "github.com/plus3/avatars/ecs/debugui/ebiten"
	ebitensurface "github.com/plus3/avatars/surface/ebiten"
)

// Game adapts the arena manager to ebiten.Game.
type Game struct {
	manager *arena.Manager
	surface *ebitensurface.Surface
	overlay *debugui_ebiten.Overlay

	sheetReady bool
	cssWidth   int
	cssHeight  int
	ratio      float64
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	cfg := g.manager.Config()
	if !g.sheetReady && cfg.Look == config.LookSprite {
		g.surface.SetSheet(arena.DefaultSheet, ebitensurface.PlaceholderSheet(cfg.FrameSize, cfg.FrameCount))
		g.sheetReady = true
	}

	dt := 1 / float64(ebiten.TPS())
	if g.overlay != nil {
		g.overlay.Update(dt)
	}
	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		for _, d := range ebitensurface.PressedDirections() {
			g.manager.SteerControlled(d)
		}
	}

	g.manager.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.manager.Draw(g.surface)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout renders at device resolution so the canvas is sized in device
// pixels, as the avatars' coordinates are.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	if outsideWidth != g.cssWidth || outsideHeight != g.cssHeight || ratio != g.ratio {
		g.cssWidth, g.cssHeight, g.ratio = outsideWidth, outsideHeight, ratio
		g.manager.Resize(float64(outsideWidth), float64(outsideHeight), ratio)
	}

	w, h := int(float64(outsideWidth)*ratio), int(float64(outsideHeight)*ratio)
	if g.overlay != nil {
		g.overlay.Layout(w, h)
	}
	return w, h
}
