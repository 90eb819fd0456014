package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

type separationFixture struct {
	w      *ecs.World
	tuning *prefabs.Tuning
	sys    *SeparationSystem
	player ecs.Entity
	vacuum ecs.Entity
}

func newSeparationFixture(t *testing.T) *separationFixture {
	t.Helper()
	w := ecs.NewWorld()
	cfg := ecs.DefaultPhysicsConfig()
	cfg.Backend = "null"
	pw := ecs.NewPhysicsWorld(w, cfg, zap.NewNop())
	pw.Init()

	tuning := prefabs.DefaultTuning()

	player := w.CreateEntity()
	w.SetPlayer(player)
	ecs.Add(w, player, component.TransformComponent, component.Transform{})

	vacuum := w.CreateEntity()
	ecs.Add(w, vacuum, component.TransformComponent, component.Transform{})
	ecs.Add(w, vacuum, component.VacuumTagComponent, component.VacuumTag{})

	return &separationFixture{
		w:      w,
		tuning: &tuning,
		sys:    NewSeparationSystem(&tuning, pw),
		player: player,
		vacuum: vacuum,
	}
}

func (f *separationFixture) dist() float64 {
	p, _ := ecs.Get(f.w, f.player, component.TransformComponent)
	v, _ := ecs.Get(f.w, f.vacuum, component.TransformComponent)
	return planarDist(p.Pos, v.Pos)
}

func TestSeparationPushesApart(t *testing.T) {
	f := newSeparationFixture(t)
	ecs.Mut(f.w, f.vacuum, component.TransformComponent).Pos = mgl64.Vec3{0, 0, 0.3}

	f.sys.Update(f.w, 0.016)
	assert.GreaterOrEqual(t, f.dist(), f.tuning.Vacuum.MinSeparation-1e-9)
}

func TestSeparationLeavesDistantPairAlone(t *testing.T) {
	f := newSeparationFixture(t)
	ecs.Mut(f.w, f.vacuum, component.TransformComponent).Pos = mgl64.Vec3{0, 0, 2}

	f.sys.Update(f.w, 0.016)

	v, _ := ecs.Get(f.w, f.vacuum, component.TransformComponent)
	p, _ := ecs.Get(f.w, f.player, component.TransformComponent)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, v.Pos)
	assert.Equal(t, mgl64.Vec3{}, p.Pos)
}

func TestSeparationResolvesCoincidentPair(t *testing.T) {
	f := newSeparationFixture(t)
	// both parties on the same spot still split deterministically
	f.sys.Update(f.w, 0.016)
	assert.GreaterOrEqual(t, f.dist(), f.tuning.Vacuum.MinSeparation-1e-9)
}

func TestSeparationHoldsAgainstWallClamp(t *testing.T) {
	f := newSeparationFixture(t)
	bound := f.tuning.World.Bound
	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{bound, 0, bound - 0.1}
	ecs.Mut(f.w, f.vacuum, component.TransformComponent).Pos = mgl64.Vec3{bound, 0, bound}

	f.sys.Update(f.w, 0.016)
	require.GreaterOrEqual(t, f.dist(), f.tuning.Vacuum.MinSeparation-1e-9,
		"the corner cannot be allowed to pin the pair together")
}
