package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/ecs"
)

// Side identifies a paw.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// SwipeHit is emitted once per target per activation while a swipe is active.
// Dir is the normalized horizontal direction from the reach point toward the
// target at the tick of the hit.
type SwipeHit struct {
	Side   Side
	Target ecs.Entity
	Dir    mgl64.Vec3
}

// Knocked fires exactly once per knockable, on its first landed hit.
type Knocked struct {
	Target ecs.Entity
}

// ScratchTick fires on every scratch hit with the updated progress.
type ScratchTick struct {
	Target   ecs.Entity
	Progress float64
}

// ScratchComplete fires exactly once, on the hit where progress reaches 100.
type ScratchComplete struct {
	Target ecs.Entity
}

// Poked is the generic reaction event forwarded to poke targets. The agent's
// reaction pass drains it after the resolver, within the same tick.
type Poked struct {
	Target ecs.Entity
}

// ScoreAwarded reports points granted by the score sink.
type ScoreAwarded struct {
	Target ecs.Entity
	Points int
	Total  int
	Reason string
}
