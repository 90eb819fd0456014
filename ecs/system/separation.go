package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// SeparationSystem enforces the minimum cat/vacuum distance every tick,
// independent of what either party's behavior is doing. Both get pushed half
// the deficit apart along the radial; if the room bounds ate part of the
// correction, the agent takes the remainder.
type SeparationSystem struct {
	tuning *prefabs.Tuning
	pw     *ecs.PhysicsWorld
}

func NewSeparationSystem(tuning *prefabs.Tuning, pw *ecs.PhysicsWorld) *SeparationSystem {
	return &SeparationSystem{tuning: tuning, pw: pw}
}

func (s *SeparationSystem) Update(w *ecs.World, _ float64) {
	player := w.Player()
	if !w.IsAlive(player) {
		return
	}
	playerTr := ecs.Mut(w, player, component.TransformComponent)
	if playerTr == nil {
		return
	}

	minSep := s.tuning.Vacuum.MinSeparation
	bound := s.tuning.World.Bound

	ecs.Each(w, component.VacuumTagComponent, func(e ecs.Entity, _ *component.VacuumTag) {
		tr := ecs.Mut(w, e, component.TransformComponent)
		if tr == nil {
			return
		}

		dir, dist := radial(playerTr.Pos, tr.Pos)
		if dist >= minSep {
			return
		}

		half := (minSep - dist) / 2
		tr.Pos = clampToBounds(tr.Pos.Add(dir.Mul(half)), bound)
		playerTr.Pos = clampToBounds(playerTr.Pos.Sub(dir.Mul(half)), bound)

		// bounds clamping can swallow part of a push; settle the rest on
		// the agent, and if the agent is pinned against a wall put the
		// remainder on the player, which can always move inward
		dir, dist = radial(playerTr.Pos, tr.Pos)
		if dist < minSep {
			tr.Pos = clampToBounds(tr.Pos.Add(dir.Mul(minSep-dist)), bound)
		}
		dir, dist = radial(playerTr.Pos, tr.Pos)
		if dist < minSep {
			playerTr.Pos = clampToBounds(playerTr.Pos.Sub(dir.Mul(minSep-dist)), bound)
		}

		s.pw.SetPosition(e, tr.Pos)
		s.pw.SetPosition(player, playerTr.Pos)
	})
}

// radial returns the unit direction from a toward b on the floor plane and
// the planar distance. Coincident points get a fixed axis so the push stays
// deterministic.
func radial(a, b mgl64.Vec3) (mgl64.Vec3, float64) {
	d := mgl64.Vec3{b.X() - a.X(), 0, b.Z() - a.Z()}
	dist := d.Len()
	if dist < 1e-9 {
		return mgl64.Vec3{0, 0, 1}, 0
	}
	return d.Mul(1 / dist), dist
}
