// Command avatars-term runs the avatar playfield in a terminal. Arrow keys
// or WASD steer the player; q, Esc or Ctrl-C quit.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/avatars/arena"
	"github.com/plus3/avatars/audio"
	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/surface/term"
)

func main() {
	cfg := config.Default()
	cfg.Model = config.ModelStep
	cfg.RegisterFlags(flag.CommandLine)
	logPath := flag.String("log", "", "write logs to this file (the terminal is busy drawing)")
	volume := flag.Float64("volume", 0.5, "cue volume between 0 and 1")
	flag.Parse()

	if err := run(cfg, *logPath, *volume); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, logPath string, volume float64) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "avatars-term: ", log.LstdFlags)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	surface := term.NewSurface(screen)
	canvas := surface.CanvasSize()
	cfg.Width, cfg.Height, cfg.PixelRatio = canvas.Width, canvas.Height, 1

	opts := []arena.Option{arena.WithLogger(logger)}
	if cfg.Sound {
		player := audio.NewPlayer(volume)
		if err := player.Init(); err != nil {
			logger.Printf("audio disabled: %v", err)
		} else {
			defer player.Close()
			opts = append(opts, arena.WithCues(player))
		}
	}

	m, err := arena.NewManager(cfg, opts...)
	if err != nil {
		return err
	}
	if _, err := m.PopulateDemo(); err != nil {
		logger.Printf("demo population incomplete: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	steer := make(chan arena.Direction, 8)
	resize := make(chan arena.Canvas, 1)
	go term.Pump(ctx, surface, cancel, steer, resize)

	logger.Printf("running %s model with %d avatars on %.0fx%.0f", cfg.Model, m.Len(), canvas.Width, canvas.Height)
	err = m.Run(ctx, surface, arena.Input{Steer: steer, Resize: resize})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
