package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// attack is the fade-in length as a fraction of the tone.
const attack = 0.1

// tone is a sine wave with a linear attack and an exponential decay to silence.
type tone struct {
	freq     float64
	rate     beep.SampleRate
	position int
	length   int
}

// NewTone returns a finite sine streamer of freq Hz lasting d.
func NewTone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, rate: rate, length: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		v := 0.25 * envelope(t.position, t.length) *
			math.Sin(2*math.Pi*t.freq*float64(t.position)/float64(t.rate))
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope is 0 at the first sample, 1 at the end of the attack, then decays to ~0 at length.
func envelope(pos, length int) float64 {
	if length <= 0 {
		return 0
	}
	p := float64(pos) / float64(length)
	if p < attack {
		return p / attack
	}
	return math.Exp(-5 * (p - attack) / (1 - attack))
}
