package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

// KinematicSystem integrates the velocity of entities the physics space does
// not drive: everything in degraded mode, and anything never registered.
// Damping and gravity mirror the backend's tuning so the two paths feel the
// same.
type KinematicSystem struct {
	tuning *prefabs.Tuning
	pw     *ecs.PhysicsWorld
}

func NewKinematicSystem(tuning *prefabs.Tuning, pw *ecs.PhysicsWorld) *KinematicSystem {
	return &KinematicSystem{tuning: tuning, pw: pw}
}

func (k *KinematicSystem) Update(w *ecs.World, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > k.tuning.Physics.MaxStep {
		dt = k.tuning.Physics.MaxStep
	}

	bound := k.tuning.World.Bound
	retain := math.Pow(k.tuning.Physics.Damping, dt)

	ecs.Each(w, component.VelocityComponent, func(e ecs.Entity, vel *component.Velocity) {
		if _, backendDriven := k.pw.Handle(e); backendDriven {
			return
		}
		tr := ecs.Mut(w, e, component.TransformComponent)
		if tr == nil {
			return
		}

		vy := vel.Lin.Y() + k.tuning.Physics.Gravity*dt
		y := tr.Pos.Y() + vy*dt
		if y <= 0 {
			y = 0
			vy = 0
		}

		tr.Pos = clampToBounds(mgl64.Vec3{
			tr.Pos.X() + vel.Lin.X()*dt,
			y,
			tr.Pos.Z() + vel.Lin.Z()*dt,
		}, bound)

		vel.Lin = mgl64.Vec3{vel.Lin.X() * retain, vy, vel.Lin.Z() * retain}
	})
}
