package sfx

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/milk9111/platformer/ecs/component"
)

const SampleRate = beep.SampleRate(44100)

const ms = time.Millisecond

// cues maps every game sound to the notes played in sequence.
var cues = map[component.Sound][]Note{
	component.SoundJump: {
		{Wave: WaveSquare, From: 330, To: 660, Duration: 120 * ms, Release: 40 * ms, Volume: 0.3},
	},
	component.SoundStomp: {
		{Wave: WaveSquare, From: 440, To: 220, Duration: 60 * ms, Volume: 0.35},
		{Wave: WaveSquare, From: 660, To: 880, Duration: 60 * ms, Release: 30 * ms, Volume: 0.3},
	},
	component.SoundPowerUp: {
		{Wave: WaveTriangle, From: 392, To: 392, Duration: 70 * ms, Volume: 0.4},
		{Wave: WaveTriangle, From: 523, To: 523, Duration: 70 * ms, Volume: 0.4},
		{Wave: WaveTriangle, From: 659, To: 659, Duration: 70 * ms, Volume: 0.4},
		{Wave: WaveTriangle, From: 784, To: 1046, Duration: 160 * ms, Release: 60 * ms, Volume: 0.4},
	},
	component.SoundDamage: {
		{Wave: WaveSquare, From: 600, To: 150, Duration: 300 * ms, Release: 80 * ms, Volume: 0.3},
	},
	component.SoundDeath: {
		{Wave: WaveTriangle, From: 494, To: 494, Duration: 150 * ms, Volume: 0.4},
		{Wave: WaveTriangle, From: 698, To: 698, Duration: 150 * ms, Volume: 0.4},
		{Wave: WaveTriangle, From: 698, To: 110, Duration: 700 * ms, Release: 200 * ms, Volume: 0.4},
	},
	component.SoundFlag: {
		{Wave: WaveSine, From: 1200, To: 300, Duration: 700 * ms, Release: 100 * ms, Volume: 0.35},
	},
	component.SoundBump: {
		{Wave: WaveSquare, From: 110, To: 90, Duration: 70 * ms, Release: 30 * ms, Volume: 0.4},
	},
	component.SoundBreak: {
		{Wave: WaveNoise, From: 1, To: 1, Duration: 220 * ms, Attack: 5 * ms, Release: 150 * ms, Volume: 0.35},
	},
}

// Streamer returns the cue for s as a beep stream.
func Streamer(s component.Sound, rate beep.SampleRate) (beep.Streamer, error) {
	notes, ok := cues[s]
	if !ok {
		return nil, fmt.Errorf("sfx: unknown sound %q", s)
	}
	streams := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streams = append(streams, NoteStreamer(n, rate))
	}
	return beep.Seq(streams...), nil
}

// Render plays the cue for s into 16-bit little-endian stereo PCM.
func Render(s component.Sound, rate beep.SampleRate) ([]byte, error) {
	stream, err := Streamer(s, rate)
	if err != nil {
		return nil, err
	}

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok || n == 0 {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("sfx: render %q: %w", s, err)
	}
	return out, nil
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// Bank holds every cue pre-rendered at one sample rate.
type Bank struct {
	Rate beep.SampleRate
	pcm  map[component.Sound][]byte
}

func NewBank(rate beep.SampleRate) (*Bank, error) {
	b := &Bank{Rate: rate, pcm: make(map[component.Sound][]byte, len(cues))}
	for _, s := range component.Sounds {
		data, err := Render(s, rate)
		if err != nil {
			return nil, err
		}
		b.pcm[s] = data
	}
	return b, nil
}

// PCM returns the rendered cue, or nil for an unknown sound.
func (b *Bank) PCM(s component.Sound) []byte {
	return b.pcm[s]
}
