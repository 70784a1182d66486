package arena

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/plus3/avatars/ecs"
)

// AvatarInfo is a read-only snapshot of one avatar.
type AvatarInfo struct {
	ID         uuid.UUID
	Entity     ecs.EntityId
	Name       string
	Label      string
	Position   Position
	Velocity   Velocity
	Radius     float64
	Speed      float64
	Facing     Direction
	Adversary  bool
	Wanderer   bool
	Controlled bool
}

type avatarDetails struct {
	ecs.EntityId
	*Position
	*Body
	*Identity
	*Mover
	Velocity   *Velocity   `ecs:"optional"`
	Adversary  *Adversary  `ecs:"optional"`
	Wanderer   *Wanderer   `ecs:"optional"`
	Controlled *Controlled `ecs:"optional"`
}

func (d avatarDetails) info() AvatarInfo {
	info := AvatarInfo{
		ID:         d.Identity.ID,
		Entity:     d.EntityId,
		Name:       d.Identity.Name,
		Label:      d.Identity.Label(),
		Position:   *d.Position,
		Radius:     d.Body.Radius,
		Speed:      d.Mover.Speed,
		Facing:     d.Mover.Facing,
		Adversary:  d.Adversary != nil,
		Wanderer:   d.Wanderer != nil,
		Controlled: d.Controlled != nil,
	}
	if d.Velocity != nil {
		info.Velocity = *d.Velocity
	}
	return info
}

// Avatars returns a snapshot of every avatar, ordered by label then ID.
func (m *Manager) Avatars() []AvatarInfo {
	m.details.Execute()
	out := make([]AvatarInfo, 0, m.details.Len())
	for d := range m.details.Iter() {
		out = append(out, d.info())
	}
	slices.SortFunc(out, func(a, b AvatarInfo) int {
		if c := cmp.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// Lookup returns a snapshot of the avatar behind ref.
func (m *Manager) Lookup(ref *ecs.EntityRef) (AvatarInfo, bool) {
	id, ok := m.storage.ResolveEntityRef(ref)
	if !ok {
		return AvatarInfo{}, false
	}
	d, ok := m.details.Get(id)
	if !ok {
		return AvatarInfo{}, false
	}
	return d.info(), true
}
