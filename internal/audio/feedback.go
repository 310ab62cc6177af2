package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Feedback plays short procedural sounds for selections and mesh rebuilds. Until Init succeeds
// every call is a no-op, so the playground runs unchanged without an audio device.
type Feedback struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewFeedback returns an uninitialized Feedback. volume is a gain in doublings (0 = unchanged).
func NewFeedback(volume float64) *Feedback {
	return &Feedback{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker and starts the mixer.
func (f *Feedback) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Enabled reports whether sounds are played.
func (f *Feedback) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Blip is a rising two-tone chirp for a selection.
func (f *Feedback) Blip() {
	f.play(beep.Seq(
		NewTone(660, 40*time.Millisecond, sampleRate),
		NewTone(990, 60*time.Millisecond, sampleRate),
	))
}

// Click is a short low tick for a rebuilt mesh.
func (f *Feedback) Click() {
	f.play(NewTone(220, 25*time.Millisecond, sampleRate))
}

func (f *Feedback) play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	vol := &effects.Volume{Streamer: s, Base: 2, Volume: f.volume}
	speaker.Lock()
	f.mixer.Add(vol)
	speaker.Unlock()
}

// Close silences everything still queued.
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Clear()
	f.initialized = false
}
