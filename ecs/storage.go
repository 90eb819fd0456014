package ecs

// entityAllocator tracks slot generations and a free list. Slot 0 is never
// handed out so the zero Entity stays invalid.
type entityAllocator struct {
	gens []generation // indexed by slot id
	free []entityID
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{gens: make([]generation, 1)}
}

func (a *entityAllocator) create() Entity {
	var id entityID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = entityID(len(a.gens))
		a.gens = append(a.gens, 0)
	}
	return makeEntity(id, a.gens[id])
}

func (a *entityAllocator) destroy(e Entity) bool {
	if !a.alive(e) {
		return false
	}
	id := e.id()
	a.gens[id]++
	a.free = append(a.free, id)
	return true
}

func (a *entityAllocator) alive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) >= len(a.gens) {
		return false
	}
	return a.gens[id] == e.generation()
}
