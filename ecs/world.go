package ecs

import "github.com/pawbox/pawbox/ecs/component"

// System updates a world once per tick with the frame's time step.
type System interface {
	Update(w *World, dt float64)
}

type componentStore interface {
	removeEntity(e Entity) bool
}

// World owns entities, component storage, and the ordered system list. All
// access happens on the tick goroutine; there is no internal locking.
type World struct {
	alloc   *entityAllocator
	stores  []componentStore // indexed by component.ID
	systems []System

	player Entity

	// destroyHooks run before an entity's components are dropped, so owners
	// of external resources (physics bodies) can release them first.
	destroyHooks []func(Entity)
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{alloc: newEntityAllocator()}
}

// CreateEntity allocates a fresh entity handle.
func (w *World) CreateEntity() Entity {
	return w.alloc.create()
}

// DestroyEntity releases an entity and all of its components. Stale handles
// are a no-op. Destroy hooks run while the entity is still alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.alloc.alive(e) {
		return false
	}
	for _, hook := range w.destroyHooks {
		hook(e)
	}
	for _, s := range w.stores {
		if s != nil {
			s.removeEntity(e)
		}
	}
	return w.alloc.destroy(e)
}

// IsAlive reports whether the handle refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.alloc.alive(e)
}

// OnDestroy registers a hook invoked for every entity about to be destroyed.
func (w *World) OnDestroy(hook func(Entity)) {
	if hook != nil {
		w.destroyHooks = append(w.destroyHooks, hook)
	}
}

// AddSystem appends a system; update order is registration order.
func (w *World) AddSystem(s System) {
	if s != nil {
		w.systems = append(w.systems, s)
	}
}

// Update runs every system once in order with the given time step.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

// SetPlayer records which entity is the player cat.
func (w *World) SetPlayer(e Entity) {
	w.player = e
}

// Player returns the player entity, which may be stale if destroyed.
func (w *World) Player() Entity {
	return w.player
}

func storeFor[T any](w *World, h component.Handle[T]) *sparseSet[T] {
	id := int(h.ID())
	for len(w.stores) <= id {
		w.stores = append(w.stores, nil)
	}
	if w.stores[id] == nil {
		w.stores[id] = newSparseSet[T]()
	}
	return w.stores[id].(*sparseSet[T])
}
