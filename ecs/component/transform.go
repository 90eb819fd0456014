package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in the room. Pos is the base of the object (feet
// on the floor at Y=0); Rot is XYZ euler radians with Rot[1] the yaw.
type Transform struct {
	Pos mgl64.Vec3
	Rot mgl64.Vec3
}

func (t Transform) Yaw() float64 {
	return t.Rot[1]
}

var TransformComponent = NewComponent[Transform]()

// Velocity is the kinematic linear velocity for entities the physics space
// does not drive (degraded mode, or never registered).
type Velocity struct {
	Lin mgl64.Vec3
}

var VelocityComponent = NewComponent[Velocity]()
