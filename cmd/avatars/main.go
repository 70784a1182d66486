// Command avatars opens a window with the avatar playfield. Arrow keys or
// WASD steer the player; -debug adds an ImGui overlay.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/audio"
	"github.com/plus3/avatars/config"
	debugui_ebiten "github.com/plus3/avatars/ecs/debugui/ebiten"
	ebitensurface "github.com/plus3/avatars/surface/ebiten"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	debug := flag.Bool("debug", false, "show the ImGui debug overlay")
	sheetPath := flag.String("sheet", "", "sprite sheet image for -look sprite (default: generated)")
	volume := flag.Float64("volume", 0.5, "cue volume between 0 and 1")
	flag.Parse()

	logger := log.New(os.Stderr, "avatars: ", log.LstdFlags)
	opts := []arena.Option{arena.WithLogger(logger)}

	if cfg.Sound {
		player := audio.NewPlayer(*volume)
		if err := player.Init(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			opts = append(opts, arena.WithCues(player))
		}
	}

	m, err := arena.NewManager(cfg, opts...)
	if err != nil {
		logger.Fatal(err)
	}
	if _, err := m.PopulateDemo(); err != nil {
		logger.Printf("demo population incomplete: %v", err)
	}

	game := &Game{
		manager: m,
		surface: ebitensurface.NewSurface(),
	}
	if cfg.Look == config.LookSprite && *sheetPath != "" {
		sheet, err := ebitensurface.LoadSheet(*sheetPath)
		if err != nil {
			logger.Fatal(err)
		}
		game.surface.SetSheet(arena.DefaultSheet, sheet)
		game.sheetReady = true
	}

	const title = "Avatars"
	if *debug {
		game.overlay = debugui_ebiten.NewOverlay(title, int(cfg.Width), int(cfg.Height))
		addDebugWindows(game.overlay, m)
	} else {
		ebiten.SetWindowSize(int(cfg.Width), int(cfg.Height))
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate)

	logger.Printf("running %s model with %d avatars", cfg.Model, m.Len())
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
	logger.Println("bye")
}
