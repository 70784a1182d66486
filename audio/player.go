// Package audio plays short synthesized cues for playfield events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// blockedCooldown keeps a held key against a neighbour from stacking buzzes.
const blockedCooldown = 200 * time.Millisecond

// Player turns arena events into sounds. Its zero value is not usable; call
// NewPlayer. Before Init succeeds every cue is a no-op.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	lastBlocked time.Time
	now         func() time.Time
}

// NewPlayer creates a player at the given linear volume in [0, 1].
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		now:    time.Now,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	speaker.Lock()
	p.mixer.Add(ClickSound(sampleRate, p.volume))
	speaker.Unlock()
	p.initialized = true
	return nil
}

// Close silences anything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

func (p *Player) Spawned() {
	p.play(SpawnSound(sampleRate, p.volume))
}

func (p *Player) Blocked() {
	p.mu.Lock()
	now := p.now()
	if now.Sub(p.lastBlocked) < blockedCooldown {
		p.mu.Unlock()
		return
	}
	p.lastBlocked = now
	p.mu.Unlock()

	p.play(BlockedSound(sampleRate, p.volume))
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
