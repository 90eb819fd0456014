package system

import (
	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/prefabs"
)

// PresentationSystem stands in for the visual layer: it tracks how long each
// paw's swipe visual and each agent's reaction gesture has left to play. The
// swipe machine queries it so a new gesture can't start over a playing one.
type PresentationSystem struct {
	tuning *prefabs.Tuning

	paws     map[Side]float64
	gestures map[ecs.Entity]gesturePlayback
}

type gesturePlayback struct {
	name      string
	remaining float64
}

func NewPresentationSystem(tuning *prefabs.Tuning) *PresentationSystem {
	return &PresentationSystem{
		tuning:   tuning,
		paws:     make(map[Side]float64),
		gestures: make(map[ecs.Entity]gesturePlayback),
	}
}

// IsPresenting reports whether the paw's swipe visual is still playing.
func (p *PresentationSystem) IsPresenting(side Side) bool {
	return p.paws[side] > 0
}

// StartSwipe begins the paw swipe visual. Fire and forget.
func (p *PresentationSystem) StartSwipe(side Side) {
	p.paws[side] = p.tuning.Swipe.Presentation
}

// PlayGesture begins a named gesture on an entity. Fire and forget.
func (p *PresentationSystem) PlayGesture(e ecs.Entity, name string, duration float64) {
	p.gestures[e] = gesturePlayback{name: name, remaining: duration}
}

// ActiveGesture returns the gesture currently playing on an entity.
func (p *PresentationSystem) ActiveGesture(e ecs.Entity) (string, bool) {
	g, ok := p.gestures[e]
	if !ok || g.remaining <= 0 {
		return "", false
	}
	return g.name, true
}

func (p *PresentationSystem) Update(_ *ecs.World, dt float64) {
	for side, left := range p.paws {
		if left > 0 {
			p.paws[side] = left - dt
		}
	}
	for e, g := range p.gestures {
		g.remaining -= dt
		if g.remaining <= 0 {
			delete(p.gestures, e)
			continue
		}
		p.gestures[e] = g
	}
}
