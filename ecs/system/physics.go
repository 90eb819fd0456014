package system

import "github.com/pawbox/pawbox/ecs"

// PhysicsSystem advances the physics world once per tick. All the real work
// (dt clamp, backend step, transform write-back) lives on the world itself.
type PhysicsSystem struct {
	pw *ecs.PhysicsWorld
}

func NewPhysicsSystem(pw *ecs.PhysicsWorld) *PhysicsSystem {
	return &PhysicsSystem{pw: pw}
}

func (p *PhysicsSystem) Update(_ *ecs.World, dt float64) {
	p.pw.Step(dt)
}
