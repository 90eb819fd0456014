package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawbox/pawbox/ecs"
	"github.com/pawbox/pawbox/ecs/component"
	"github.com/pawbox/pawbox/prefabs"
)

type gazeFixture struct {
	w      *ecs.World
	tuning *prefabs.Tuning
	sys    *GazeSystem
	player ecs.Entity
	vacuum ecs.Entity
}

func newGazeFixture(t *testing.T) *gazeFixture {
	t.Helper()
	w := ecs.NewWorld()
	tuning := prefabs.DefaultTuning()

	player := w.CreateEntity()
	w.SetPlayer(player)
	ecs.Add(w, player, component.TransformComponent, component.Transform{})

	vacuum := w.CreateEntity()
	ecs.Add(w, vacuum, component.TransformComponent, component.Transform{})
	ecs.Add(w, vacuum, component.VacuumTagComponent, component.VacuumTag{})
	ecs.Add(w, vacuum, component.GazeComponent, component.Gaze{})

	return &gazeFixture{
		w:      w,
		tuning: &tuning,
		sys:    NewGazeSystem(&tuning),
		player: player,
		vacuum: vacuum,
	}
}

func (f *gazeFixture) gaze() component.Gaze {
	g, _ := ecs.Get(f.w, f.vacuum, component.GazeComponent)
	return g
}

func TestGazeTurnsTowardNearbyPlayer(t *testing.T) {
	f := newGazeFixture(t)
	// player ahead and slightly to the right of the vacuum's facing
	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{0.5, 0, 1}

	f.sys.Update(f.w, 1.0) // one big step lands on the target angles

	g := f.gaze()
	assert.InDelta(t, math.Atan2(0.5, 1), g.Yaw, 1e-9)
	assert.Less(t, g.Pitch, 0.0, "the player is below the sensor head")
}

func TestGazeClampsToHeadLimits(t *testing.T) {
	f := newGazeFixture(t)
	cfg := f.tuning.Vacuum
	// player directly behind: the head cannot turn that far
	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{0, 0, -1}

	f.sys.Update(f.w, 1.0)

	assert.InDelta(t, cfg.GazeMaxYaw, math.Abs(f.gaze().Yaw), 1e-9)
}

func TestGazeRelaxesOutsideAwareness(t *testing.T) {
	f := newGazeFixture(t)
	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{0.5, 0, 1}
	f.sys.Update(f.w, 1.0)
	require.NotEqual(t, 0.0, f.gaze().Yaw)

	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{10, 0, 10}
	f.sys.Update(f.w, 1.0)

	assert.Equal(t, 0.0, f.gaze().Yaw)
	assert.Equal(t, 0.0, f.gaze().Pitch)
}

func TestGazeApproachIsRateLimited(t *testing.T) {
	f := newGazeFixture(t)
	ecs.Mut(f.w, f.player, component.TransformComponent).Pos = mgl64.Vec3{1, 0, 1}

	f.sys.Update(f.w, 0.01)

	// a single small step can cover at most speed*dt
	maxStep := f.tuning.Vacuum.GazeSpeed * 0.01
	assert.LessOrEqual(t, math.Abs(f.gaze().Yaw), maxStep+1e-9)
	assert.Greater(t, math.Abs(f.gaze().Yaw), 0.0)
}
