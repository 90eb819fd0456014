package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawbox/pawbox/ecs/component"
)

func TestCreateDestroyEntity(t *testing.T) {
	w := NewWorld()

	a := w.CreateEntity()
	b := w.CreateEntity()
	require.NotEqual(t, a, b)
	assert.True(t, w.IsAlive(a))
	assert.True(t, w.IsAlive(b))

	require.True(t, w.DestroyEntity(a))
	assert.False(t, w.IsAlive(a))
	assert.True(t, w.IsAlive(b))

	// destroying twice is a no-op
	assert.False(t, w.DestroyEntity(a))
}

func TestStaleHandleAfterSlotReuse(t *testing.T) {
	w := NewWorld()

	a := w.CreateEntity()
	Add(w, a, component.TransformComponent, component.Transform{})
	require.True(t, w.DestroyEntity(a))

	// the slot comes back with a bumped generation
	b := w.CreateEntity()
	assert.True(t, w.IsAlive(b))
	assert.False(t, w.IsAlive(a))

	_, ok := Get(w, a, component.TransformComponent)
	assert.False(t, ok, "stale handle must not read the new tenant's data")
}

func TestComponentAccessors(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	_, ok := Get(w, e, component.GazeComponent)
	assert.False(t, ok)

	Add(w, e, component.GazeComponent, component.Gaze{Yaw: 0.5})
	got, ok := Get(w, e, component.GazeComponent)
	require.True(t, ok)
	assert.Equal(t, 0.5, got.Yaw)

	g := Mut(w, e, component.GazeComponent)
	require.NotNil(t, g)
	g.Pitch = -0.2
	got, _ = Get(w, e, component.GazeComponent)
	assert.Equal(t, -0.2, got.Pitch)

	assert.True(t, Has(w, e, component.GazeComponent))
	assert.True(t, Remove(w, e, component.GazeComponent))
	assert.False(t, Has(w, e, component.GazeComponent))
}

func TestDestroyClearsComponents(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	Add(w, e, component.KnockableComponent, component.Knockable{Knocked: true})

	var hooked []Entity
	w.OnDestroy(func(dead Entity) {
		hooked = append(hooked, dead)
		// components are still readable while hooks run
		assert.True(t, Has(w, dead, component.KnockableComponent))
	})

	require.True(t, w.DestroyEntity(e))
	assert.Equal(t, []Entity{e}, hooked)
}

func TestEachSkipsDestroyed(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	Add(w, a, component.VacuumTagComponent, component.VacuumTag{})
	Add(w, b, component.VacuumTagComponent, component.VacuumTag{})
	require.True(t, w.DestroyEntity(a))

	var seen []Entity
	Each(w, component.VacuumTagComponent, func(e Entity, _ *component.VacuumTag) {
		seen = append(seen, e)
	})
	assert.Equal(t, []Entity{b}, seen)

	first, ok := First(w, component.VacuumTagComponent)
	require.True(t, ok)
	assert.Equal(t, b, first)
}

func TestSystemOrder(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(systemFunc(func(*World, float64) { order = append(order, "a") }))
	w.AddSystem(systemFunc(func(*World, float64) { order = append(order, "b") }))

	w.Update(0.016)
	w.Update(0.016)
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

type systemFunc func(w *World, dt float64)

func (f systemFunc) Update(w *World, dt float64) { f(w, dt) }
