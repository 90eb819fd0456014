package component

import "sync/atomic"

// ID is a process-unique identifier for a component type.
type ID uint32

var nextID atomic.Uint32

// Handle ties a component type to its storage slot. Handles are created once
// at package init via NewComponent and passed to the generic world accessors.
type Handle[T any] struct {
	id ID
}

// NewComponent registers a new component type and returns its handle.
func NewComponent[T any]() Handle[T] {
	return Handle[T]{id: ID(nextID.Add(1))}
}

func (h Handle[T]) ID() ID {
	return h.id
}

func (h Handle[T]) Valid() bool {
	return h.id != 0
}
