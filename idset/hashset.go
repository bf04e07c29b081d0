package idset

import (
	"iter"
	"maps"
	"slices"

	"github.com/hupe1980/entitycache/core"
)

// HashSet is the general fallback encoding: one LongSet per type id plus a
// flag for the null entity.
//
// A HashSet is mutable until Freeze is called. Sets handed out by a Selector
// are always frozen, so a cached result can be shared between readers.
type HashSet struct {
	types   map[int32]*LongSet
	hasNull bool
	count   int
	frozen  bool
}

// NewHashSet creates an empty, mutable HashSet.
func NewHashSet() *HashSet {
	return &HashSet{
		types: make(map[int32]*LongSet),
	}
}

// Freeze makes the set read-only. It returns s for chaining.
func (s *HashSet) Freeze() *HashSet {
	s.frozen = true
	return s
}

// Frozen reports whether the set is read-only.
func (s *HashSet) Frozen() bool {
	return s.frozen
}

// Add implements EntityIDSet.
func (s *HashSet) Add(typeID int32, localID int64) error {
	if s.frozen {
		return ErrReadOnly
	}
	if typeID == core.NullTypeID {
		if !s.hasNull {
			s.hasNull = true
			s.count++
		}
		return nil
	}
	ls, ok := s.types[typeID]
	if !ok {
		ls = NewLongSet()
		s.types[typeID] = ls
	}
	if ls.Add(localID) {
		s.count++
	}
	return nil
}

// AddID implements EntityIDSet.
func (s *HashSet) AddID(id core.EntityID) error {
	return s.Add(id.TypeID, id.LocalID)
}

// Remove implements EntityIDSet.
func (s *HashSet) Remove(typeID int32, localID int64) (bool, error) {
	if s.frozen {
		return false, ErrReadOnly
	}
	if typeID == core.NullTypeID {
		if !s.hasNull {
			return false, nil
		}
		s.hasNull = false
		s.count--
		return true, nil
	}
	ls, ok := s.types[typeID]
	if !ok || !ls.Remove(localID) {
		return false, nil
	}
	if ls.IsEmpty() {
		delete(s.types, typeID)
	}
	s.count--
	return true, nil
}

// RemoveID implements EntityIDSet.
func (s *HashSet) RemoveID(id core.EntityID) (bool, error) {
	return s.Remove(id.TypeID, id.LocalID)
}

// Contains implements EntityIDSet.
func (s *HashSet) Contains(typeID int32, localID int64) bool {
	if typeID == core.NullTypeID {
		return s.hasNull
	}
	ls, ok := s.types[typeID]
	return ok && ls.Contains(localID)
}

// ContainsID implements EntityIDSet.
func (s *HashSet) ContainsID(id core.EntityID) bool {
	return s.Contains(id.TypeID, id.LocalID)
}

// Count implements EntityIDSet.
func (s *HashSet) Count() int {
	return s.count
}

// All yields the null id first (if present), then members ordered by type id
// and local id.
func (s *HashSet) All() iter.Seq[core.EntityID] {
	return func(yield func(core.EntityID) bool) {
		if s.hasNull && !yield(core.NullID) {
			return
		}
		for _, typeID := range slices.Sorted(maps.Keys(s.types)) {
			for localID := range s.types[typeID].All() {
				if !yield(core.NewEntityID(typeID, localID)) {
					return
				}
			}
		}
	}
}

// TypeLocalIDs implements EntityIDSet.
func (s *HashSet) TypeLocalIDs(typeID int32) *LongSet {
	ls, ok := s.types[typeID]
	if !ok {
		return NewLongSet()
	}
	return ls.Clone()
}
