package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType is an oscillator wave shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator returns a mono wave duplicated on both channels that ends
// after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps volume up over attack samples and down over the final
// release samples.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) gain(pos int) float64 {
	vol := 1.0
	if e.attack > 0 && pos < e.attack {
		vol = float64(pos) / float64(e.attack)
	}
	if remaining := e.total - pos; e.release > 0 && remaining < e.release {
		vol = min(vol, float64(remaining)/float64(e.release))
	}
	return max(vol, 0)
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly by vol; zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

const (
	spawnNoteDuration = 60 * time.Millisecond
	blockedDuration   = 120 * time.Millisecond
	clickDuration     = 15 * time.Millisecond
)

// SpawnSound is a rising two-note blip.
func SpawnSound(rate beep.SampleRate, volume float64) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		osc := NewOscillator(freq, spawnNoteDuration, WaveSine, rate)
		return NewEnvelope(osc, spawnNoteDuration, 5*time.Millisecond, 30*time.Millisecond, rate)
	}
	return newVolume(beep.Seq(note(660), note(990)), volume)
}

// BlockedSound is a short low saw buzz.
func BlockedSound(rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewOscillator(110, blockedDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, blockedDuration, 5*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(shaped, volume*0.6)
}

// ClickSound is a very short sine tick, used to confirm the audio device.
func ClickSound(rate beep.SampleRate, volume float64) beep.Streamer {
	sine, err := generators.SineTone(rate, 1320)
	if err != nil {
		return beep.Silence(rate.N(clickDuration))
	}
	return newVolume(beep.Take(rate.N(clickDuration), sine), volume*0.5)
}
