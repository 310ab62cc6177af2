package animation

import (
	"sort"
)

// LoopMode controls what happens when playback passes the last key of a looping animation.
type LoopMode int

const (
	// LoopCycle restarts from the first frame.
	LoopCycle LoopMode = iota
	// LoopConstant holds the value of the last key.
	LoopConstant
)

// Key is a value at a frame.
type Key struct {
	Frame float32
	Value float32
}

// Animation animates one float property (e.g. "position.y") of a target through keyframes.
// Keys are sorted by frame; values between keys are interpolated linearly.
type Animation struct {
	Name      string
	Property  string
	FrameRate float32
	Loop      LoopMode
	keys      []Key
}

// New returns an animation of property at frameRate frames per second.
func New(name, property string, frameRate float32, loop LoopMode) *Animation {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &Animation{Name: name, Property: property, FrameRate: frameRate, Loop: loop}
}

// SetKeys replaces the keyframes.
func (a *Animation) SetKeys(keys []Key) {
	a.keys = append(a.keys[:0], keys...)
	sort.SliceStable(a.keys, func(i, j int) bool { return a.keys[i].Frame < a.keys[j].Frame })
}

// Keys returns a copy of the keyframes.
func (a *Animation) Keys() []Key {
	out := make([]Key, len(a.keys))
	copy(out, a.keys)
	return out
}

// LastFrame returns the frame of the final key, or 0 without keys.
func (a *Animation) LastFrame() float32 {
	if len(a.keys) == 0 {
		return 0
	}
	return a.keys[len(a.keys)-1].Frame
}

// Evaluate returns the interpolated value at frame, clamped to the first and last keys.
func (a *Animation) Evaluate(frame float32) float32 {
	if len(a.keys) == 0 {
		return 0
	}
	if frame <= a.keys[0].Frame {
		return a.keys[0].Value
	}
	last := a.keys[len(a.keys)-1]
	if frame >= last.Frame {
		return last.Value
	}
	i := sort.Search(len(a.keys), func(i int) bool { return a.keys[i].Frame > frame })
	k0, k1 := a.keys[i-1], a.keys[i]
	span := k1.Frame - k0.Frame
	if span <= 0 {
		return k1.Value
	}
	t := (frame - k0.Frame) / span
	return k0.Value + (k1.Value-k0.Value)*t
}

// BounceProperty is the property path animated by Bounce.
const BounceProperty = "position.y"

// BounceFrameRate is the playback rate of the bounce animation.
const BounceFrameRate = 30

// Bounce returns the selection animation: up by amplitude at the half-way frame and back to y at
// the last frame.
func Bounce(y, amplitude, duration float32) *Animation {
	a := New("bounce", BounceProperty, BounceFrameRate, LoopCycle)
	a.SetKeys([]Key{
		{Frame: 0, Value: y},
		{Frame: duration / 2, Value: y + amplitude},
		{Frame: duration, Value: y},
	})
	return a
}
