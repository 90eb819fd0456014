package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/pawbox/pawbox/common"
	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

const playerTurnRate = 10.0

// PlayerControllerSystem turns the tick's movement intent into player
// motion. With a live backend it drives the player body's velocity and lets
// the space resolve walls and props; degraded it writes the kinematic
// velocity instead. The player's yaw belongs to this system alone.
type PlayerControllerSystem struct {
	tuning *prefabs.Tuning
	pw     *ecs.PhysicsWorld
}

func NewPlayerControllerSystem(tuning *prefabs.Tuning, pw *ecs.PhysicsWorld) *PlayerControllerSystem {
	return &PlayerControllerSystem{tuning: tuning, pw: pw}
}

func (p *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	player := w.Player()
	if !w.IsAlive(player) {
		return
	}
	tr := ecs.Mut(w, player, component.TransformComponent)
	if tr == nil {
		return
	}
	intent, _ := ecs.Get(w, player, component.IntentComponent)

	move := mgl64.Vec3{intent.MoveX, 0, intent.MoveZ}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}

	if move.Len() > 1e-3 {
		desired := math.Atan2(move.X(), move.Z())
		tr.Rot[1] = common.RotateToward(tr.Rot[1], desired, playerTurnRate*dt)
	}

	speed := p.tuning.Player.Speed
	if handle, ok := p.pw.Handle(player); ok {
		handle.Body.SetVelocityVector(cp.Vector{X: move.X() * speed, Y: move.Z() * speed})
	} else {
		lin := mgl64.Vec3{move.X() * speed, 0, move.Z() * speed}
		if vel := ecs.Mut(w, player, component.VelocityComponent); vel != nil {
			vel.Lin = mgl64.Vec3{lin.X(), vel.Lin.Y(), lin.Z()}
		} else {
			ecs.Add(w, player, component.VelocityComponent, component.Velocity{Lin: lin})
		}
	}

	grounded := p.pw.RaycastDown(tr.Pos, p.tuning.Player.GroundProbe)
	if ps := ecs.Mut(w, player, component.PlayerStateComponent); ps != nil {
		ps.Grounded = grounded
	} else {
		ecs.Add(w, player, component.PlayerStateComponent, component.PlayerState{Grounded: grounded})
	}
}
