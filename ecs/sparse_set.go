package ecs

import "slices"

// sparseSet stores one component kind keyed by entity slot. Values are kept
// as `any` so a single World map can hold every kind; the generic accessors
// in generics.go restore the static type.
type sparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

func (s *sparseSet) has(e Entity) bool {
	idx, ok := s.index(e.id())
	return ok && s.dense[idx] == e
}

func (s *sparseSet) index(id entityID) (int, bool) {
	if s == nil || int(id) >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx].id() != id {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet) get(e Entity) (any, bool) {
	if !s.has(e) {
		return nil, false
	}
	return s.values[s.sparse[e.id()]], true
}

// set inserts or replaces the value for e. A value left behind by an older
// generation of the same slot is overwritten.
func (s *sparseSet) set(e Entity, v any) {
	id := e.id()
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id] = len(s.dense) - 1
}

func (s *sparseSet) remove(e Entity) bool {
	if !s.has(e) {
		return false
	}
	s.removeID(e.id())
	return true
}

func (s *sparseSet) removeID(id entityID) {
	idx, ok := s.index(id)
	if !ok {
		return
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = idx

	s.dense = s.dense[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[id] = -1
}

func (s *sparseSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// sorted returns a snapshot of the stored entities in ascending slot order.
func (s *sparseSet) sorted() []Entity {
	if s == nil || len(s.dense) == 0 {
		return nil
	}
	out := slices.Clone(s.dense)
	slices.SortFunc(out, func(a, b Entity) int {
		return int(a.id()) - int(b.id())
	})
	return out
}
