package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/ecs/system"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(zap.NewNop(), 1)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func (g *Game) findProp(name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.Each(g.world, component.InfoComponent, func(e ecs.Entity, info *component.Info) {
		if info.Name == name {
			found, ok = e, true
		}
	})
	return found, ok
}

// teleport puts the player down at pos, facing +Z, both in the store and in
// the physics space.
func (g *Game) teleport(pos mgl64.Vec3) {
	tr := ecs.Mut(g.world, g.player, component.TransformComponent)
	tr.Pos = pos
	tr.Rot[1] = 0
	g.physics.SetPosition(g.player, pos)
}

func (g *Game) run(ticks int, dt float64) {
	for i := 0; i < ticks; i++ {
		g.SetIntent(component.Intent{})
		g.Update(dt)
	}
}

func TestGameBootsFromPrefabs(t *testing.T) {
	g := newTestGame(t)

	require.True(t, g.world.IsAlive(g.player))
	require.True(t, g.world.IsAlive(g.vacuum))

	_, ok := g.findProp("soda_can")
	assert.True(t, ok)
	_, ok = g.findProp("scratch_post")
	assert.True(t, ok)

	g.run(10, 0.016)
	assert.Equal(t, 0, g.Score(), "nothing scores on its own")
}

func TestSwipeKnocksCanAndScores(t *testing.T) {
	g := newTestGame(t)
	can, ok := g.findProp("soda_can")
	require.True(t, ok)

	canTr, _ := ecs.Get(g.world, can, component.TransformComponent)
	g.teleport(canTr.Pos.Sub(mgl64.Vec3{0, 0, 0.45}))

	g.SetIntent(component.Intent{SwipeRight: true})
	g.Update(0.02)
	g.run(30, 0.02)

	k, _ := ecs.Get(g.world, can, component.KnockableComponent)
	assert.True(t, k.Knocked)
	assert.Equal(t, g.tuning.Score.Knock, g.Score())

	awards := g.DrainAwards()
	require.Len(t, awards, 1)
	assert.Equal(t, "knocked", awards[0].Reason)
	assert.Equal(t, can, awards[0].Target)
}

func TestPokingVacuumStartlesIt(t *testing.T) {
	g := newTestGame(t)

	vacTr, _ := ecs.Get(g.world, g.vacuum, component.TransformComponent)
	g.teleport(vacTr.Pos.Sub(mgl64.Vec3{0, 0, 0.45}))

	g.SetIntent(component.Intent{SwipeLeft: true})
	g.Update(0.02)
	g.run(30, 0.02)

	assert.Equal(t, system.VacuumPoked, g.agent.Phase(g.vacuum))
	name, playing := g.presentation.ActiveGesture(g.vacuum)
	assert.True(t, playing)
	assert.NotEmpty(t, name)
	assert.Equal(t, 0, g.Score(), "pokes are mischief, not points")
}
