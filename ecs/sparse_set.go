package ecs

// sparseSet stores one component type densely, indexed sparsely by entity
// slot id. Dense entries keep the full Entity so stale generations miss.
type sparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int // by slot id, -1 when absent
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) int {
	id := int(e.id())
	if id <= 0 || id >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1
	}
	return idx
}

func (s *sparseSet[T]) has(e Entity) bool {
	return s.index(e) >= 0
}

func (s *sparseSet[T]) get(e Entity) (T, bool) {
	var zero T
	idx := s.index(e)
	if idx < 0 {
		return zero, false
	}
	return s.values[idx], true
}

// mut returns a pointer into dense storage. The pointer is valid until the
// next set or removal on this set.
func (s *sparseSet[T]) mut(e Entity) *T {
	idx := s.index(e)
	if idx < 0 {
		return nil
	}
	return &s.values[idx]
}

func (s *sparseSet[T]) set(e Entity, v T) {
	id := int(e.id())
	if id <= 0 {
		return
	}
	for len(s.sparse) <= id {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.index(e); idx >= 0 {
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id] = len(s.dense) - 1
}

func (s *sparseSet[T]) removeEntity(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	last := len(s.dense) - 1
	lastEnt := s.dense[last]

	s.dense[idx] = lastEnt
	s.values[idx] = s.values[last]
	s.sparse[lastEnt.id()] = idx

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()] = -1
	return true
}

func (s *sparseSet[T]) entities() []Entity {
	return s.dense
}
