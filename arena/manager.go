// Package arena is the avatar playfield: avatars placed by rejection
// sampling, moved by keyboard or random walk under one of two movement
// models, and drawn every frame by a Manager that owns them all.
package arena

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"iter"
	"log"
	"math/rand/v2"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/ecs"
)

// Cues receives notable playfield events, for example to play sounds.
type Cues interface {
	Spawned()
	Blocked()
}

type noCues struct{}

func (noCues) Spawned() {}
func (noCues) Blocked() {}

// Manager owns the canvas, every avatar, and the update and draw loops.
type Manager struct {
	cfg     config.Config
	storage *ecs.Storage
	update  *ecs.Scheduler
	draw    *ecs.Scheduler

	canvas *ecs.Singleton[Canvas]
	screen *ecs.Singleton[Screen]

	avatars   *ecs.Query[avatar]
	positions *ecs.Query[struct {
		ecs.EntityId
		*Position
	}]
	controlled *ecs.Query[struct {
		ecs.EntityId
		*Controlled
	}]
	details *ecs.Query[avatarDetails]

	rng    *rand.Rand
	logger *log.Logger
	cues   Cues
}

// Option customises a Manager.
type Option func(*Manager)

// WithLogger sends manager logs to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithRand replaces the manager's random source, e.g. for reproducible tests.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithCues delivers spawn and blocked-move events to c.
func WithCues(c Cues) Option {
	return func(m *Manager) { m.cues = c }
}

// NewManager validates cfg and builds an empty playfield sized
// cfg.Width×cfg.Height at cfg.PixelRatio.
func NewManager(cfg config.Config, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	m := &Manager{
		cfg:     cfg,
		storage: storage,
		logger:  log.New(io.Discard, "", 0),
		cues:    noCues{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		m.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	ecs.NewSingleton[config.Config](storage, cfg)
	ecs.NewSingleton[WanderClock](storage)
	m.canvas = ecs.NewSingleton[Canvas](storage)
	m.screen = ecs.NewSingleton[Screen](storage)
	m.setCanvas(cfg.Width, cfg.Height, cfg.PixelRatio)

	m.avatars = ecs.NewQuery[avatar](storage)
	m.positions = ecs.NewQuery[struct {
		ecs.EntityId
		*Position
	}](storage)
	m.controlled = ecs.NewQuery[struct {
		ecs.EntityId
		*Controlled
	}](storage)
	m.details = ecs.NewQuery[avatarDetails](storage)

	m.update = ecs.NewScheduler(storage)
	m.update.Register(&WanderSystem{Rand: m.rng})
	m.update.Register(&MotionSystem{})
	m.update.Register(&AnimationSystem{})

	m.draw = ecs.NewScheduler(storage)
	m.draw.Register(&RenderSystem{})

	return m, nil
}

// Config returns the settings the manager was built with.
func (m *Manager) Config() config.Config {
	return m.cfg
}

// Storage exposes the underlying ECS storage, e.g. for debug tooling.
func (m *Manager) Storage() *ecs.Storage {
	return m.storage
}

// Canvas returns the current canvas size in device pixels.
func (m *Manager) Canvas() Canvas {
	return *m.canvas.Get()
}

// Positions yields every avatar's ID and position. It is the avatar
// collection handed to placement.
func (m *Manager) Positions() iter.Seq2[ecs.EntityId, Position] {
	m.positions.Execute()
	return positionQuery{q: m.positions}.Positions()
}

// SpawnOptions describes a new avatar.
type SpawnOptions struct {
	// Name is the display name; empty generates one like "bro-1234".
	Name       string
	Wander     bool
	Adversary  bool
	Controlled bool
	// Speed overrides the configured speed for the avatar's role.
	Speed float64
}

// Spawn places and creates an avatar. It fails with ErrNoValidPosition when
// no free spot turns up within the configured attempts.
func (m *Manager) Spawn(opts SpawnOptions) (*ecs.EntityRef, error) {
	canvas := m.Canvas()
	placement := Placement{
		Area: canvas.Inset(m.cfg.PlacementPadding).
			Intersect(SafeBounds(canvas, m.cfg, m.cfg.Radius)),
		SafeDistance: m.cfg.SafeDistance,
		MaxAttempts:  m.cfg.MaxAttempts,
	}
	pos, err := Place(m.rng, placement, m)
	if err != nil {
		m.logger.Printf("spawn %q failed: %v", opts.Name, err)
		return nil, fmt.Errorf("spawn avatar: %w", err)
	}

	identity := Identity{
		ID:          uuid.New(),
		Name:        fmt.Sprintf("bro-%d", m.rng.IntN(10000)),
		DisplayName: opts.Name,
	}
	components := []any{
		pos,
		Body{Radius: m.cfg.Radius},
		identity,
		Mover{Speed: m.speedFor(opts), Facing: Down},
		Appearance{Color: m.randomColor()},
	}
	if m.cfg.Model == config.ModelFriction {
		components = append(components, Velocity{})
	}
	if m.cfg.Look == config.LookSprite {
		components = append(components, newSprite(m.cfg))
	}
	if opts.Wander {
		components = append(components, Wanderer{Heading: randomDirection(m.rng)})
	}
	if opts.Adversary {
		components = append(components, Adversary{})
	}
	if opts.Controlled {
		components = append(components, Controlled{})
	}

	id := m.storage.Spawn(components...)
	m.logger.Printf("spawned %s (%s) at (%.1f, %.1f)", identity.Label(), identity.ID, pos.X, pos.Y)
	m.cues.Spawned()
	return m.storage.CreateEntityRef(id), nil
}

func (m *Manager) speedFor(opts SpawnOptions) float64 {
	switch {
	case opts.Speed > 0:
		return opts.Speed
	case opts.Adversary:
		return m.cfg.AdversarySpeed
	case opts.Wander:
		return m.cfg.WandererSpeed
	}
	return m.cfg.PlayerSpeed
}

func (m *Manager) randomColor() color.RGBA {
	v := m.rng.Uint32() & 0xffffff
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Remove deletes the avatar behind ref. It reports false if the avatar was
// already gone.
func (m *Manager) Remove(ref *ecs.EntityRef) bool {
	id, ok := m.storage.ResolveEntityRef(ref)
	if !ok {
		return false
	}
	if ident := ecs.ReadComponent[Identity](m.storage, id); ident != nil {
		m.logger.Printf("removed %s (%s)", ident.Label(), ident.ID)
	}
	m.storage.Delete(id)
	return true
}

// Len returns the number of live avatars.
func (m *Manager) Len() int {
	m.positions.Execute()
	return m.positions.Len()
}

// Steer applies one directional input to the avatar behind ref. Under the
// step model it reports false when the move was dropped for crowding.
func (m *Manager) Steer(ref *ecs.EntityRef, d Direction) bool {
	id, ok := m.storage.ResolveEntityRef(ref)
	if !ok {
		return false
	}
	return m.steerID(id, d)
}

// SteerControlled steers every Controlled avatar. It reports whether any of
// them moved.
func (m *Manager) SteerControlled(d Direction) bool {
	m.controlled.Execute()
	ids := make([]ecs.EntityId, 0, m.controlled.Len())
	for id := range m.controlled.All() {
		ids = append(ids, id)
	}

	moved := false
	for _, id := range ids {
		moved = m.steerID(id, d) || moved
	}
	return moved
}

func (m *Manager) steerID(id ecs.EntityId, d Direction) bool {
	a, ok := m.avatars.Get(id)
	if !ok {
		return false
	}
	m.positions.Execute()
	moved := steer(m.cfg, m.Canvas(), a, d, positionQuery{q: m.positions})
	if !moved && m.cfg.Model == config.ModelStep {
		m.cues.Blocked()
	}
	return moved
}

// SetSpeed changes an avatar's speed.
func (m *Manager) SetSpeed(ref *ecs.EntityRef, speed float64) bool {
	id, ok := m.storage.ResolveEntityRef(ref)
	if !ok {
		return false
	}
	mover := ecs.ReadComponent[Mover](m.storage, id)
	if mover == nil {
		return false
	}
	mover.Speed = speed
	return true
}

// SetAdversary tags or untags an avatar as an adversary.
func (m *Manager) SetAdversary(ref *ecs.EntityRef, adversary bool) bool {
	id, ok := m.storage.ResolveEntityRef(ref)
	if !ok {
		return false
	}
	if adversary {
		m.storage.AddComponent(id, Adversary{})
	} else {
		m.storage.RemoveComponent(id, reflect.TypeFor[Adversary]())
	}
	return true
}

// Resize recomputes the canvas from its CSS size and device pixel ratio and
// pulls every avatar back inside the new bounds. Avatars too large for the
// new canvas are left where they are.
func (m *Manager) Resize(cssWidth, cssHeight, pixelRatio float64) {
	m.setCanvas(cssWidth, cssHeight, pixelRatio)
	canvas := m.Canvas()

	m.avatars.Execute()
	for a := range m.avatars.Iter() {
		bounds := SafeBounds(canvas, m.cfg, a.Body.Radius)
		if bounds.Empty() {
			m.logger.Printf("canvas %.0fx%.0f too small for radius %g, avatar left at (%.1f, %.1f)",
				canvas.Width, canvas.Height, a.Body.Radius, a.Position.X, a.Position.Y)
			continue
		}
		*a.Position = bounds.Clamp(*a.Position)
	}
	m.logger.Printf("canvas resized to %.0fx%.0f (ratio %g)", canvas.Width, canvas.Height, canvas.PixelRatio)
}

func (m *Manager) setCanvas(cssWidth, cssHeight, pixelRatio float64) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	c := m.canvas.Get()
	c.Width = cssWidth * pixelRatio
	c.Height = cssHeight * pixelRatio
	c.PixelRatio = pixelRatio
}

// Update advances the simulation by dt seconds: random walk, friction and
// integration, sprite animation.
func (m *Manager) Update(dt float64) {
	m.update.Once(dt)
}

// Draw renders every avatar onto surface, then presents the frame if the
// surface is a Presenter.
func (m *Manager) Draw(surface Surface) {
	m.screen.Get().Surface = surface
	m.draw.Once(0)
	m.screen.Get().Surface = nil

	if p, ok := surface.(Presenter); ok {
		p.Present()
	}
}

// Input carries front-end events into Run. Either channel may be nil.
type Input struct {
	Steer <-chan Direction
	// Resize delivers a new CSS size and pixel ratio.
	Resize <-chan Canvas
}

// Run updates and draws once per tick of cfg.TickInterval until ctx is
// cancelled. Steering and resize events are applied between frames on the
// calling goroutine.
func (m *Manager) Run(ctx context.Context, surface Surface, in Input) error {
	ticker := time.NewTicker(m.cfg.TickInterval())
	defer ticker.Stop()

	steer, resize := in.Steer, in.Resize
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-steer:
			if !ok {
				steer = nil
				continue
			}
			m.SteerControlled(d)
		case c, ok := <-resize:
			if !ok {
				resize = nil
				continue
			}
			m.Resize(c.Width, c.Height, c.PixelRatio)
		case now := <-ticker.C:
			m.Update(now.Sub(last).Seconds())
			m.Draw(surface)
			last = now
		}
	}
}

// UpdateStats returns timings for the update systems.
func (m *Manager) UpdateStats() *ecs.SchedulerStats {
	return m.update.GetStats()
}

// DrawStats returns timings for the draw systems.
func (m *Manager) DrawStats() *ecs.SchedulerStats {
	return m.draw.GetStats()
}
