package system

import (
	"math"

	"github.com/pawbox/pawbox/common"
	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// GazeSystem aims each agent's head at the player whenever the player is
// inside the awareness radius. The head orientation is its own channel:
// clamped relative to the body, smoothed, and untouched by the behavior
// machine, so the vacuum watches the cat even while wandering away from it.
type GazeSystem struct {
	tuning *prefabs.Tuning
}

func NewGazeSystem(tuning *prefabs.Tuning) *GazeSystem {
	return &GazeSystem{tuning: tuning}
}

func (g *GazeSystem) Update(w *ecs.World, dt float64) {
	player := w.Player()
	playerTr, havePlayer := ecs.Get(w, player, component.TransformComponent)
	if !w.IsAlive(player) {
		havePlayer = false
	}

	cfg := &g.tuning.Vacuum

	ecs.Each(w, component.VacuumTagComponent, func(e ecs.Entity, _ *component.VacuumTag) {
		gaze := ecs.Mut(w, e, component.GazeComponent)
		tr := ecs.Mut(w, e, component.TransformComponent)
		if gaze == nil || tr == nil {
			return
		}

		targetYaw, targetPitch := 0.0, 0.0
		if havePlayer && planarDist(tr.Pos, playerTr.Pos) <= cfg.AwarenessRadius {
			dx := playerTr.Pos.X() - tr.Pos.X()
			dz := playerTr.Pos.Z() - tr.Pos.Z()
			dy := playerTr.Pos.Y() - (tr.Pos.Y() + cfg.HeadHeight)

			targetYaw = common.Clamp(
				common.AngleDiff(tr.Rot[1], math.Atan2(dx, dz)),
				-cfg.GazeMaxYaw, cfg.GazeMaxYaw,
			)
			targetPitch = common.Clamp(
				math.Atan2(dy, math.Hypot(dx, dz)),
				-cfg.GazeMaxPitch, cfg.GazeMaxPitch,
			)
		}

		gaze.Yaw = common.Approach(gaze.Yaw, targetYaw, cfg.GazeSpeed*dt)
		gaze.Pitch = common.Approach(gaze.Pitch, targetPitch, cfg.GazeSpeed*dt)
	})
}
