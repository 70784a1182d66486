// Package config holds the playfield settings shared by every command.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"
)

// Model selects how avatars respond to a directional input.
type Model string

const (
	// ModelFriction adds to velocity; velocity decays every tick.
	ModelFriction Model = "friction"
	// ModelStep moves by a fixed step and refuses moves that crowd another avatar.
	ModelStep Model = "step"
)

// Look selects how avatars are drawn.
type Look string

const (
	LookCircle Look = "circle"
	LookSprite Look = "sprite"
)

// Config is the full set of playfield parameters.
type Config struct {
	// Canvas size in CSS pixels; the pixel size is this times PixelRatio.
	Width      float64
	Height     float64
	PixelRatio float64

	Radius           float64
	EdgePadding      float64 // gap between an avatar's edge and the canvas border
	PlacementPadding float64 // margin of the rectangle spawn points are drawn from
	SafeDistance     float64
	MaxAttempts      int

	Friction      float64
	StopThreshold float64

	PlayerSpeed    float64
	WandererSpeed  float64
	AdversarySpeed float64

	WanderInterval time.Duration
	TurnChance     float64
	Wanderers      int

	FrameSize  int
	FrameCount int
	FrameDelay int

	Model Model
	Look  Look

	Seed     uint64
	TickRate int
	Sound    bool
}

// Default returns the settings of the original demo.
func Default() Config {
	return Config{
		Width:            800,
		Height:           600,
		PixelRatio:       1,
		Radius:           20,
		EdgePadding:      10,
		PlacementPadding: 40,
		SafeDistance:     60,
		MaxAttempts:      50,
		Friction:         0.9,
		StopThreshold:    0.01,
		PlayerSpeed:      2,
		WandererSpeed:    2,
		AdversarySpeed:   5,
		WanderInterval:   100 * time.Millisecond,
		TurnChance:       0.2,
		Wanderers:        7,
		FrameSize:        128,
		FrameCount:       4,
		FrameDelay:       5,
		Model:            ModelFriction,
		Look:             LookCircle,
		TickRate:         60,
	}
}

// RegisterFlags binds the user-facing settings to fs, using the current
// values of c as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Width, "width", c.Width, "canvas width in CSS pixels")
	fs.Float64Var(&c.Height, "height", c.Height, "canvas height in CSS pixels")
	fs.Float64Var(&c.PixelRatio, "pixel-ratio", c.PixelRatio, "device pixel ratio")
	fs.Float64Var(&c.Radius, "radius", c.Radius, "avatar radius")
	fs.Float64Var(&c.SafeDistance, "safe-distance", c.SafeDistance, "minimum distance between avatars")
	fs.IntVar(&c.MaxAttempts, "max-attempts", c.MaxAttempts, "spawn placement attempts before giving up")
	fs.Float64Var(&c.Friction, "friction", c.Friction, "velocity damping per tick (friction model)")
	fs.Float64Var(&c.PlayerSpeed, "player-speed", c.PlayerSpeed, "speed of the keyboard avatar")
	fs.Float64Var(&c.WandererSpeed, "wanderer-speed", c.WandererSpeed, "speed of wandering avatars")
	fs.Float64Var(&c.AdversarySpeed, "adversary-speed", c.AdversarySpeed, "speed of the adversary")
	fs.DurationVar(&c.WanderInterval, "wander-interval", c.WanderInterval, "time between random-walk steps")
	fs.Float64Var(&c.TurnChance, "turn-chance", c.TurnChance, "chance per step that a wanderer picks a new heading")
	fs.IntVar(&c.Wanderers, "wanderers", c.Wanderers, "number of wandering avatars")
	fs.Func("model", "movement model: friction or step", func(s string) error {
		m, err := ParseModel(s)
		c.Model = m
		return err
	})
	fs.Func("look", "avatar look: circle or sprite", func(s string) error {
		l, err := ParseLook(s)
		c.Look = l
		return err
	})
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "random seed (0 picks one)")
	fs.IntVar(&c.TickRate, "tick-rate", c.TickRate, "frames per second for the headless and terminal loops")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play audio cues")
}

// ParseModel converts a flag value into a Model.
func ParseModel(s string) (Model, error) {
	switch m := Model(s); m {
	case ModelFriction, ModelStep:
		return m, nil
	}
	return ModelFriction, fmt.Errorf("unknown movement model %q", s)
}

// ParseLook converts a flag value into a Look.
func ParseLook(s string) (Look, error) {
	switch l := Look(s); l {
	case LookCircle, LookSprite:
		return l, nil
	}
	return LookCircle, fmt.Errorf("unknown look %q", s)
}

// Validate reports every setting that would make the playfield unusable.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Width > 0 && c.Height > 0, "canvas size must be positive, got %gx%g", c.Width, c.Height)
	check(c.Radius > 0, "radius must be positive, got %g", c.Radius)
	check(c.EdgePadding >= 0, "edge padding must not be negative, got %g", c.EdgePadding)
	check(c.PlacementPadding >= c.Radius+c.EdgePadding,
		"placement padding %g must be at least radius+edge padding (%g)", c.PlacementPadding, c.Radius+c.EdgePadding)
	check(2*c.PlacementPadding < c.Width && 2*c.PlacementPadding < c.Height,
		"canvas %gx%g leaves no room inside placement padding %g", c.Width, c.Height, c.PlacementPadding)
	check(c.SafeDistance >= 0, "safe distance must not be negative, got %g", c.SafeDistance)
	check(c.MaxAttempts > 0, "max attempts must be positive, got %d", c.MaxAttempts)
	check(c.Friction >= 0 && c.Friction < 1, "friction must be in [0, 1), got %g", c.Friction)
	check(c.StopThreshold >= 0, "stop threshold must not be negative, got %g", c.StopThreshold)
	check(c.WanderInterval > 0, "wander interval must be positive, got %s", c.WanderInterval)
	check(c.TurnChance >= 0 && c.TurnChance <= 1, "turn chance must be in [0, 1], got %g", c.TurnChance)
	check(c.Wanderers >= 0, "wanderer count must not be negative, got %d", c.Wanderers)
	check(c.FrameCount > 0 && c.FrameDelay > 0 && c.FrameSize > 0, "sprite frame settings must be positive")
	check(c.TickRate > 0, "tick rate must be positive, got %d", c.TickRate)
	_, err := ParseModel(string(c.Model))
	check(err == nil, "%v", err)
	_, err = ParseLook(string(c.Look))
	check(err == nil, "%v", err)

	return errors.Join(errs...)
}

// TickInterval is the frame period implied by TickRate.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
