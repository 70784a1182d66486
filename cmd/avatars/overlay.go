package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/ecs/debugui"
	debugui_ebiten "github.com/plus3/avatars/ecs/debugui/ebiten"
)

func addDebugWindows(o *debugui_ebiten.Overlay, m *arena.Manager) {
	o.Add(debugui.NewPerformancePanel(m.Storage(), 120,
		debugui.SchedulerSource{Name: "Update", Stats: m.UpdateStats},
		debugui.SchedulerSource{Name: "Draw", Stats: m.DrawStats},
	).Item())
	o.Add(debugui.NewEntityBrowser(m.Storage(), 50).Item())
	o.Add(debugui.ImguiItem{Render: (&avatarPanel{manager: m}).Render})
}

// avatarPanel lists every avatar and can spawn or remove them.
type avatarPanel struct {
	manager *arena.Manager
	status  string
}

func (p *avatarPanel) Render() {
	if !imgui.BeginV("Avatars", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	canvas := p.manager.Canvas()
	imgui.Text(fmt.Sprintf("Canvas: %.0fx%.0f (ratio %g)", canvas.Width, canvas.Height, canvas.PixelRatio))
	imgui.Text(fmt.Sprintf("Model: %s", p.manager.Config().Model))

	if imgui.Button("Spawn wanderer") {
		p.spawn(arena.SpawnOptions{Wander: true})
	}
	imgui.SameLine()
	if imgui.Button("Spawn adversary") {
		p.spawn(arena.SpawnOptions{Wander: true, Adversary: true})
	}
	if p.status != "" {
		imgui.Text(p.status)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("AvatarTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Role")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Velocity")
		imgui.TableSetupColumn("Facing")
		imgui.TableSetupColumn("")
		imgui.TableHeadersRow()

		for _, a := range p.manager.Avatars() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(a.Label)
			imgui.TableNextColumn()
			imgui.Text(role(a))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", a.Position.X, a.Position.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f, %.2f", a.Velocity.X, a.Velocity.Y))
			imgui.TableNextColumn()
			imgui.Text(a.Facing.String())
			imgui.TableNextColumn()
			if !a.Controlled && imgui.Button("Remove##"+a.ID.String()) {
				p.manager.Remove(p.manager.Storage().CreateEntityRef(a.Entity))
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}

func (p *avatarPanel) spawn(opts arena.SpawnOptions) {
	if _, err := p.manager.Spawn(opts); err != nil {
		p.status = err.Error()
		return
	}
	p.status = ""
}

func role(a arena.AvatarInfo) string {
	switch {
	case a.Controlled:
		return "player"
	case a.Adversary:
		return "adversary"
	case a.Wanderer:
		return "wanderer"
	}
	return "idle"
}
