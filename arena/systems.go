package arena

import (
	"iter"
	"math/rand/v2"

	"github.com/plus3/avatars/config"
	"github.com/plus3/avatars/ecs"
)

// maxWanderCatchUp bounds how many random-walk steps one long frame may run.
const maxWanderCatchUp = 5

// positionQuery adapts a cached query to PositionSource. Positions are read
// through the component pointers, so moves made earlier in the same frame
// are visible.
type positionQuery struct {
	q *ecs.Query[struct {
		ecs.EntityId
		*Position
	}]
}

func (p positionQuery) Positions() iter.Seq2[ecs.EntityId, Position] {
	return func(yield func(ecs.EntityId, Position) bool) {
		for item := range p.q.Iter() {
			if !yield(item.EntityId, *item.Position) {
				return
			}
		}
	}
}

// WanderSystem is the single clock behind every autonomous avatar. Each
// WanderInterval it gives every wanderer a TurnChance of picking a new
// heading, then steers it one step along its heading.
type WanderSystem struct {
	Config ecs.Singleton[config.Config]
	Canvas ecs.Singleton[Canvas]
	Clock  ecs.Singleton[WanderClock]

	Wanderers ecs.Query[struct {
		ecs.EntityId
		*Position
		*Body
		*Mover
		*Wanderer
		Velocity *Velocity `ecs:"optional"`
	}]
	Others ecs.Query[struct {
		ecs.EntityId
		*Position
	}]

	Rand *rand.Rand
}

func (s *WanderSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	clock := s.Clock.Get()
	interval := cfg.WanderInterval.Seconds()

	clock.Elapsed += frame.DeltaTime
	for steps := 0; clock.Elapsed >= interval; steps++ {
		if steps == maxWanderCatchUp {
			clock.Elapsed = 0
			break
		}
		clock.Elapsed -= interval
		clock.Steps++
		s.step(cfg)
	}
}

func (s *WanderSystem) step(cfg *config.Config) {
	canvas := *s.Canvas.Get()
	others := positionQuery{q: &s.Others}
	for w := range s.Wanderers.Iter() {
		if s.Rand.Float64() < cfg.TurnChance {
			w.Wanderer.Heading = randomDirection(s.Rand)
		}
		a := avatar{EntityId: w.EntityId, Position: w.Position, Body: w.Body, Mover: w.Mover, Velocity: w.Velocity}
		steer(*cfg, canvas, a, w.Wanderer.Heading, others)
	}
}

// MotionSystem runs the friction model: damp velocity, integrate, clamp.
// Avatars without a Velocity (step model) are untouched.
type MotionSystem struct {
	Config ecs.Singleton[config.Config]
	Canvas ecs.Singleton[Canvas]

	Bodies ecs.Query[struct {
		*Position
		*Velocity
		*Body
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	canvas := *s.Canvas.Get()
	for b := range s.Bodies.Iter() {
		*b.Velocity = ApplyFriction(*b.Velocity, cfg.Friction, cfg.StopThreshold)
		*b.Position = Integrate(*b.Position, *b.Velocity, SafeBounds(canvas, *cfg, b.Body.Radius))
	}
}

// AnimationSystem cycles sprite frames while an avatar is moving and rests
// on frame zero once it has been still for a full frame delay.
type AnimationSystem struct {
	Sprites ecs.Query[struct {
		*Position
		*Sprite
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Sprites.Iter() {
		advanceSprite(item.Sprite, *item.Position)
	}
}

func advanceSprite(sp *Sprite, pos Position) {
	if pos != sp.last {
		sp.idleFrames = 0
		sp.last = pos
	} else {
		sp.idleFrames++
	}

	if sp.idleFrames > sp.FrameDelay {
		sp.Frame = 0
		sp.FrameTimer = 0
		return
	}

	sp.FrameTimer++
	if sp.FrameTimer >= sp.FrameDelay {
		sp.FrameTimer = 0
		if sp.FrameCount > 0 {
			sp.Frame = (sp.Frame + 1) % sp.FrameCount
		}
	}
}

// RenderSystem clears the screen surface and draws every avatar with its
// label underneath.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]

	Avatars ecs.Query[struct {
		*Position
		*Body
		*Identity
		*Mover
		Appearance *Appearance `ecs:"optional"`
		Sprite     *Sprite     `ecs:"optional"`
		Adversary  *Adversary  `ecs:"optional"`
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	surface := s.Screen.Get().Surface
	if surface == nil {
		return
	}
	surface.Clear()

	for a := range s.Avatars.Iter() {
		x, y, r := a.Position.X, a.Position.Y, a.Body.Radius

		switch {
		case a.Sprite != nil:
			src := SpriteSource(a.Sprite.FrameSize, a.Sprite.Frame, a.Mover.Facing)
			surface.DrawSprite(a.Sprite.Sheet, src, x-r, y-r, 2*r, 2*r)
		case a.Appearance != nil:
			surface.FillCircle(x, y, r, a.Appearance.Color)
		}

		labelColor := LabelColor
		if a.Adversary != nil {
			labelColor = AdversaryColor
		}
		surface.DrawLabel(a.Identity.Label(), x, y+r+LabelOffset, labelColor)
	}
}
