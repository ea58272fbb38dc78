// Package sfx synthesises the game's sound cues with beep and renders them
// to PCM for whichever front-end plays them.
package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Note is one synthesised tone. The pitch slides linearly from From to To
// over Duration.
type Note struct {
	Wave     Wave
	From     float64
	To       float64
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Volume   float64
}

// oscillator generates one note, sweeping its frequency.
type oscillator struct {
	note     Note
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	noise    *rand.Rand
}

func newOscillator(n Note, rate beep.SampleRate) *oscillator {
	return &oscillator{
		note:  n,
		rate:  rate,
		total: rate.N(n.Duration),
		noise: rand.New(rand.NewPCG(uint64(n.From), uint64(n.To))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.note.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.total)
		freq := o.note.From + (o.note.To-o.note.From)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release samples.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, n Note, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(n.Attack),
		release:  rate.N(n.Release),
		total:    rate.N(n.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NoteStreamer returns the shaped stream for a single note.
func NoteStreamer(n Note, rate beep.SampleRate) beep.Streamer {
	vol := n.Volume
	if vol == 0 {
		vol = 1
	}
	return withVolume(newEnvelope(newOscillator(n, rate), n, rate), vol)
}
