package animation

import (
	"github.com/chewxy/math32"
	"github.com/google/uuid"
)

// Applier writes an evaluated value to property of target.
type Applier func(target uuid.UUID, property string, value float32)

type playback struct {
	anim  *Animation
	from  float32
	to    float32
	frame float32
	loop  bool
}

// Player advances animations per render tick. Playback is tracked per target: beginning an
// animation on a target stops whatever was running on it.
type Player struct {
	active map[uuid.UUID][]*playback
}

// NewPlayer returns an idle player.
func NewPlayer() *Player {
	return &Player{active: make(map[uuid.UUID][]*playback)}
}

// Begin starts playing anims on target from frame from to frame to. It does not block; values are
// written by subsequent Tick calls. A non-looping playback ends at to.
func (p *Player) Begin(target uuid.UUID, from, to float32, loop bool, anims ...*Animation) {
	if len(anims) == 0 {
		delete(p.active, target)
		return
	}
	list := make([]*playback, 0, len(anims))
	for _, a := range anims {
		if a == nil {
			continue
		}
		list = append(list, &playback{anim: a, from: from, to: to, frame: from, loop: loop})
	}
	p.active[target] = list
}

// Stop drops every animation on target without applying further values.
func (p *Player) Stop(target uuid.UUID) {
	delete(p.active, target)
}

// Active reports whether target has a running animation.
func (p *Player) Active(target uuid.UUID) bool {
	return len(p.active[target]) > 0
}

// Len returns the number of targets being animated.
func (p *Player) Len() int {
	return len(p.active)
}

// Tick advances all playbacks by dt seconds and applies their values.
func (p *Player) Tick(dt float32, apply Applier) {
	for target, list := range p.active {
		kept := list[:0]
		for _, pb := range list {
			if pb.advance(dt) {
				apply(target, pb.anim.Property, pb.anim.Evaluate(pb.frame))
				kept = append(kept, pb)
				continue
			}
			apply(target, pb.anim.Property, pb.anim.Evaluate(pb.to))
		}
		if len(kept) == 0 {
			delete(p.active, target)
		} else {
			p.active[target] = kept
		}
	}
}

// advance moves the playback forward and reports whether it is still running.
func (pb *playback) advance(dt float32) bool {
	span := pb.to - pb.from
	if span <= 0 {
		return false
	}
	pb.frame += dt * pb.anim.FrameRate
	if pb.frame < pb.to {
		return true
	}
	if !pb.loop {
		pb.frame = pb.to
		return false
	}
	if pb.anim.Loop == LoopConstant {
		pb.frame = pb.to
		return true
	}
	pb.frame = pb.from + math32.Mod(pb.frame-pb.from, span)
	return true
}
