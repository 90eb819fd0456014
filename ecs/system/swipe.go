package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// SwipePhase is the stage of one paw's strike cycle.
type SwipePhase int

const (
	SwipeIdle SwipePhase = iota
	SwipeStartup
	SwipeActive
	SwipeRecovery
)

func (p SwipePhase) String() string {
	switch p {
	case SwipeStartup:
		return "startup"
	case SwipeActive:
		return "active"
	case SwipeRecovery:
		return "recovery"
	default:
		return "idle"
	}
}

// Presenter is the visual layer seam the swipe machine talks to.
type Presenter interface {
	IsPresenting(side Side) bool
	StartSwipe(side Side)
}

// swipeTracker advances purely on accumulated frame time. No wall-clock
// timers: a timer callback racing the frame that should consume it is
// exactly the bug this machine exists to rule out.
type swipeTracker struct {
	phase   SwipePhase
	elapsed float64
	hitSet  map[ecs.Entity]struct{}
}

// SwipeSystem runs one independent tracker per paw. A target is hit at most
// once per activation; several distinct targets can be hit in one activation.
type SwipeSystem struct {
	tuning    *prefabs.Tuning
	pw        *ecs.PhysicsWorld
	presenter Presenter
	hits      *ecs.Topic[SwipeHit]

	trackers [2]swipeTracker
}

func NewSwipeSystem(tuning *prefabs.Tuning, pw *ecs.PhysicsWorld, presenter Presenter, hits *ecs.Topic[SwipeHit]) *SwipeSystem {
	return &SwipeSystem{tuning: tuning, pw: pw, presenter: presenter, hits: hits}
}

// Phase returns the paw's current cycle stage.
func (s *SwipeSystem) Phase(side Side) SwipePhase {
	return s.trackers[side].phase
}

// PhaseProgress returns how far through the current stage the paw is, 0..1.
func (s *SwipeSystem) PhaseProgress(side Side) float64 {
	t := &s.trackers[side]
	var dur float64
	switch t.phase {
	case SwipeStartup:
		dur = s.tuning.Swipe.Startup
	case SwipeActive:
		dur = s.tuning.Swipe.Active
	case SwipeRecovery:
		dur = s.tuning.Swipe.Recovery
	default:
		return 0
	}
	if dur <= 0 {
		return 1
	}
	return math.Min(t.elapsed/dur, 1)
}

func (s *SwipeSystem) Update(w *ecs.World, dt float64) {
	player := w.Player()
	if !w.IsAlive(player) {
		return
	}
	intent, _ := ecs.Get(w, player, component.IntentComponent)
	tr, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}

	s.advance(w, SideLeft, intent.SwipeLeft, dt, tr)
	s.advance(w, SideRight, intent.SwipeRight, dt, tr)
}

func (s *SwipeSystem) advance(w *ecs.World, side Side, pressed bool, dt float64, tr component.Transform) {
	t := &s.trackers[side]
	cfg := &s.tuning.Swipe

	switch t.phase {
	case SwipeIdle:
		if pressed && !s.presenter.IsPresenting(side) {
			t.phase = SwipeStartup
			t.elapsed = 0
			t.hitSet = make(map[ecs.Entity]struct{})
			s.presenter.StartSwipe(side)
		}
	case SwipeStartup:
		t.elapsed += dt
		if t.elapsed >= cfg.Startup {
			t.phase = SwipeActive
			t.elapsed = 0
			s.detectHits(w, side, t, tr)
		}
	case SwipeActive:
		t.elapsed += dt
		s.detectHits(w, side, t, tr)
		if t.elapsed >= cfg.Active {
			t.phase = SwipeRecovery
			t.elapsed = 0
		}
	case SwipeRecovery:
		t.elapsed += dt
		if t.elapsed >= cfg.Recovery {
			t.phase = SwipeIdle
			t.elapsed = 0
		}
	default:
		panic("swipe: tracker in unknown phase")
	}
}

func (s *SwipeSystem) detectHits(w *ecs.World, side Side, t *swipeTracker, tr component.Transform) {
	reach := s.reachPoint(side, tr)

	for _, target := range s.pw.OverlapSphere(reach, s.tuning.Swipe.Radius) {
		info, ok := ecs.Get(w, target, component.InfoComponent)
		if !ok || !info.Kind.Interactable() {
			continue
		}
		if _, done := t.hitSet[target]; done {
			continue // this activation already connected with it
		}
		targetTr, ok := ecs.Get(w, target, component.TransformComponent)
		if !ok {
			continue
		}
		t.hitSet[target] = struct{}{}
		s.hits.Publish(SwipeHit{
			Side:   side,
			Target: target,
			Dir:    strikeDir(reach, targetTr.Pos, tr.Yaw()),
		})
	}
}

// reachPoint is where the paw lands: ahead of the cat at paw height, offset
// a little toward the swinging side.
func (s *SwipeSystem) reachPoint(side Side, tr component.Transform) mgl64.Vec3 {
	yaw := tr.Yaw()
	forward := mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
	right := mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
	lateral := 0.12
	if side == SideLeft {
		lateral = -lateral
	}
	p := tr.Pos.Add(forward.Mul(s.tuning.Swipe.Reach)).Add(right.Mul(lateral))
	return mgl64.Vec3{p.X(), tr.Pos.Y() + s.tuning.Swipe.Height, p.Z()}
}

// strikeDir is the normalized horizontal push direction from the reach point
// toward the target, falling back to the facing direction for a dead-center
// overlap.
func strikeDir(reach, target mgl64.Vec3, yaw float64) mgl64.Vec3 {
	d := mgl64.Vec3{target.X() - reach.X(), 0, target.Z() - reach.Z()}
	if d.Len() < 1e-9 {
		return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
	}
	return d.Normalize()
}
