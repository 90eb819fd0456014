package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// InteractionSystem resolves swipe hits into effects by target kind. It is
// pure dispatch: the hit-once bookkeeping lives in the swipe trackers, the
// idempotent flags live on the components here.
type InteractionSystem struct {
	tuning *prefabs.Tuning
	pw     *ecs.PhysicsWorld

	hits *ecs.Sub[SwipeHit]

	knocked      *ecs.Topic[Knocked]
	scratchTicks *ecs.Topic[ScratchTick]
	scratchDone  *ecs.Topic[ScratchComplete]
	poked        *ecs.Topic[Poked]
}

func NewInteractionSystem(
	tuning *prefabs.Tuning,
	pw *ecs.PhysicsWorld,
	hits *ecs.Sub[SwipeHit],
	knocked *ecs.Topic[Knocked],
	scratchTicks *ecs.Topic[ScratchTick],
	scratchDone *ecs.Topic[ScratchComplete],
	poked *ecs.Topic[Poked],
) *InteractionSystem {
	return &InteractionSystem{
		tuning:       tuning,
		pw:           pw,
		hits:         hits,
		knocked:      knocked,
		scratchTicks: scratchTicks,
		scratchDone:  scratchDone,
		poked:        poked,
	}
}

func (s *InteractionSystem) Update(w *ecs.World, _ float64) {
	for _, hit := range s.hits.Drain() {
		if !w.IsAlive(hit.Target) {
			continue // target removed between detection and resolution
		}
		info, ok := ecs.Get(w, hit.Target, component.InfoComponent)
		if !ok {
			continue
		}
		switch info.Kind {
		case component.KindKnockable:
			s.resolveKnock(w, hit)
		case component.KindScratchable:
			s.resolveScratch(w, hit)
		case component.KindPokeTarget:
			s.poked.Publish(Poked{Target: hit.Target})
		}
	}
}

func (s *InteractionSystem) resolveKnock(w *ecs.World, hit SwipeHit) {
	// Two movement paths, never both: the live backend takes an impulse,
	// degraded mode shoves the kinematic velocity directly.
	if s.pw.IsReady() {
		impulse := hit.Dir.Mul(s.tuning.Swipe.Impulse).Add(mgl64.Vec3{0, s.tuning.Swipe.UpBias, 0})
		s.pw.ApplyImpulse(hit.Target, impulse)
	} else {
		shove := hit.Dir.Mul(s.tuning.Swipe.ShoveSpeed)
		if vel := ecs.Mut(w, hit.Target, component.VelocityComponent); vel != nil {
			vel.Lin = shove
		} else {
			ecs.Add(w, hit.Target, component.VelocityComponent, component.Velocity{Lin: shove})
		}
	}

	k := ecs.Mut(w, hit.Target, component.KnockableComponent)
	if k == nil {
		return
	}
	if !k.Knocked {
		k.Knocked = true
		s.knocked.Publish(Knocked{Target: hit.Target})
	}
}

func (s *InteractionSystem) resolveScratch(w *ecs.World, hit SwipeHit) {
	sc := ecs.Mut(w, hit.Target, component.ScratchableComponent)
	if sc == nil {
		return
	}
	inc := sc.Increment
	if inc <= 0 {
		inc = 5
	}
	sc.Progress = math.Min(100, sc.Progress+inc)
	s.scratchTicks.Publish(ScratchTick{Target: hit.Target, Progress: sc.Progress})
	if sc.Progress >= 100 && !sc.Complete {
		sc.Complete = true
		s.scratchDone.Publish(ScratchComplete{Target: hit.Target})
	}
}
