package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		require.Less(t, len(out), 10*int(sampleRate), "stream never ended")
	}
	require.NoError(t, s.Err())
	return out
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw} {
		samples := drain(t, NewOscillator(50, 100*time.Millisecond, wave, rate))
		assert.Len(t, samples, 100)
		for _, s := range samples {
			assert.GreaterOrEqual(t, s[0], -1.0)
			assert.LessOrEqual(t, s[0], 1.0)
			assert.Equal(t, s[0], s[1])
		}
	}
}

func TestOscillatorSquare(t *testing.T) {
	samples := drain(t, NewOscillator(100, 50*time.Millisecond, WaveSquare, beep.SampleRate(8000)))
	for i, s := range samples {
		assert.Contains(t, []float64{-1, 1}, s[0], "sample %d", i)
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	samples := drain(t, NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate))
	require.Len(t, samples, 100)

	assert.Zero(t, samples[0][0])
	assert.InDelta(t, 0.5, samples[5][0], 1e-9)
	assert.Equal(t, 1.0, samples[50][0])
	assert.InDelta(t, 0.05, samples[99][0], 1e-9)
}

func TestCueSoundsEnd(t *testing.T) {
	rate := beep.SampleRate(8000)
	assert.Len(t, drain(t, SpawnSound(rate, 1)), rate.N(2*spawnNoteDuration))
	assert.Len(t, drain(t, BlockedSound(rate, 1)), rate.N(blockedDuration))
	assert.Len(t, drain(t, ClickSound(rate, 1)), rate.N(clickDuration))
}

func TestSilentVolume(t *testing.T) {
	for _, s := range drain(t, BlockedSound(beep.SampleRate(8000), 0)) {
		assert.Zero(t, s[0])
	}
}

func TestPlayerIgnoresCuesBeforeInit(t *testing.T) {
	p := NewPlayer(0.5)
	p.Spawned()
	p.Blocked()
	assert.Zero(t, p.mixer.Len())
}

func TestPlayerBlockedCooldown(t *testing.T) {
	p := NewPlayer(1)
	clock := time.Unix(0, 0)
	p.now = func() time.Time { return clock }

	p.Blocked()
	first := p.lastBlocked
	clock = clock.Add(blockedCooldown / 2)
	p.Blocked()
	assert.Equal(t, first, p.lastBlocked)

	clock = clock.Add(blockedCooldown)
	p.Blocked()
	assert.Equal(t, clock, p.lastBlocked)
}
