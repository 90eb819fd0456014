package ecs

import "github.com/pawbox/pawbox/ecs/component"

// Add sets a component value on a live entity.
func Add[T any](w *World, e Entity, h component.Handle[T], v T) {
	if !w.IsAlive(e) || !h.Valid() {
		return
	}
	storeFor(w, h).set(e, v)
}

// Get returns a copy of the component value.
func Get[T any](w *World, e Entity, h component.Handle[T]) (T, bool) {
	var zero T
	if !w.IsAlive(e) || !h.Valid() {
		return zero, false
	}
	return storeFor(w, h).get(e)
}

// Mut returns a pointer to the stored component for in-place updates, or nil.
// The pointer is only good for the current tick.
func Mut[T any](w *World, e Entity, h component.Handle[T]) *T {
	if !w.IsAlive(e) || !h.Valid() {
		return nil
	}
	return storeFor(w, h).mut(e)
}

// Has reports whether the entity carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.IsAlive(e) || !h.Valid() {
		return false
	}
	return storeFor(w, h).has(e)
}

// Remove drops the component from the entity if present.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if !w.IsAlive(e) || !h.Valid() {
		return false
	}
	return storeFor(w, h).removeEntity(e)
}

// Each visits every live entity carrying the component. Adding or removing
// entities from inside fn is not supported.
func Each[T any](w *World, h component.Handle[T], fn func(e Entity, v *T)) {
	if !h.Valid() || fn == nil {
		return
	}
	s := storeFor(w, h)
	for i := range s.dense {
		e := s.dense[i]
		if w.IsAlive(e) {
			fn(e, &s.values[i])
		}
	}
}

// First returns any live entity carrying the component.
func First[T any](w *World, h component.Handle[T]) (Entity, bool) {
	if !h.Valid() {
		return 0, false
	}
	s := storeFor(w, h)
	for _, e := range s.dense {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}
