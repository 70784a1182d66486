package arena

import (
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/ecs"
)

// Position is an avatar's centre in canvas pixels.
type Position struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Position) Dist(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Velocity is only carried under the friction model.
type Velocity struct {
	X, Y float64
}

type Body struct {
	Radius float64
}

// Identity names an avatar. Name is generated when no display name is
// supplied; Label prefers DisplayName.
type Identity struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
}

func (id Identity) Label() string {
	if id.DisplayName != "" {
		return id.DisplayName
	}
	return id.Name
}

type Mover struct {
	Speed  float64
	Facing Direction
}

type Appearance struct {
	Color color.RGBA
}

// Sprite selects a frame from a sheet laid out with one row per Direction
// and FrameCount columns of FrameSize square cells.
type Sprite struct {
	Sheet      string
	FrameSize  int
	Frame      int
	FrameCount int
	FrameDelay int
	FrameTimer int

	idleFrames int
	last       Position
}

// Adversary tags an avatar as an enemy.
type Adversary struct{}

// Wanderer marks an avatar driven by the random walk.
type Wanderer struct {
	Heading Direction
}

// Controlled marks the keyboard-driven avatar.
type Controlled struct{}

// Canvas holds the drawing surface size in device pixels.
type Canvas struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// Inset returns the canvas rectangle shrunk by pad on every side.
func (c Canvas) Inset(pad float64) Bounds {
	return Bounds{MinX: pad, MinY: pad, MaxX: c.Width - pad, MaxY: c.Height - pad}
}

// WanderClock accumulates frame time between random-walk steps.
type WanderClock struct {
	Elapsed float64
	Steps   int64
}

// Screen carries the surface the draw scheduler renders into.
type Screen struct {
	Surface Surface
}

// RegisterComponents registers every playfield component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Identity](registry)
	ecs.RegisterComponent[Mover](registry)
	ecs.RegisterComponent[Appearance](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Adversary](registry)
	ecs.RegisterComponent[Wanderer](registry)
	ecs.RegisterComponent[Controlled](registry)
}

func newSprite(cfg config.Config) Sprite {
	return Sprite{
		Sheet:      DefaultSheet,
		FrameSize:  cfg.FrameSize,
		FrameCount: cfg.FrameCount,
		FrameDelay: cfg.FrameDelay,
	}
}
