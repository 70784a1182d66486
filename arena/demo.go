package arena

import (
	"fmt"

	"github.com/plus3/avatars/ecs"
)

// PlayerName is the display name of the keyboard avatar in the demo cast.
const PlayerName = "Player"

// PopulateDemo spawns the demo cast: one adversary wanderer, the keyboard
// avatar, then cfg.Wanderers ordinary wanderers. It returns the keyboard
// avatar. The first placement failure aborts population.
func (m *Manager) PopulateDemo() (*ecs.EntityRef, error) {
	if _, err := m.Spawn(SpawnOptions{Wander: true, Adversary: true}); err != nil {
		return nil, fmt.Errorf("adversary: %w", err)
	}

	player, err := m.Spawn(SpawnOptions{Name: PlayerName, Controlled: true})
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	for i := 0; i < m.cfg.Wanderers; i++ {
		if _, err := m.Spawn(SpawnOptions{Wander: true}); err != nil {
			return player, fmt.Errorf("wanderer %d: %w", i, err)
		}
	}

	m.logger.Printf("demo populated with %d avatars", m.Len())
	return player, nil
}
