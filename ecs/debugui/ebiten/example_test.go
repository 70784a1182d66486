package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/avatars/ecs/debugui"
	debugui_ebiten "github.com/plus3/avatars/ecs/debugui/ebiten"
)

type game struct {
	overlay *debugui_ebiten.Overlay
}

func (g *game) Update() error {
	g.overlay.Update(1.0 / 60.0)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	// game content first, overlay on top
	g.overlay.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.overlay.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	overlay := debugui_ebiten.NewOverlay("Debug Overlay", 1280, 720)
	overlay.Add(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from the overlay")
			imgui.End()
		},
	})

	if err := ebiten.RunGame(&game{overlay: overlay}); err != nil {
		panic(err)
	}
}
