package idset

import (
	"iter"
	"maps"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// LongSet is a set of local ids.
//
// Non-negative ids are kept in a roaring64 bitmap. Negative ids never occur
// for stored entities but are accepted; they live in a small side map.
type LongSet struct {
	rb  *roaring64.Bitmap
	neg map[int64]struct{}
}

// NewLongSet creates an empty LongSet.
func NewLongSet() *LongSet {
	return &LongSet{
		rb: roaring64.New(),
	}
}

// Add inserts v and reports whether it was newly added.
func (s *LongSet) Add(v int64) bool {
	if v < 0 {
		if _, ok := s.neg[v]; ok {
			return false
		}
		if s.neg == nil {
			s.neg = make(map[int64]struct{})
		}
		s.neg[v] = struct{}{}
		return true
	}
	return s.rb.CheckedAdd(uint64(v))
}

// Remove deletes v and reports whether it was present.
func (s *LongSet) Remove(v int64) bool {
	if v < 0 {
		if _, ok := s.neg[v]; !ok {
			return false
		}
		delete(s.neg, v)
		return true
	}
	return s.rb.CheckedRemove(uint64(v))
}

// Contains reports whether v is in the set.
func (s *LongSet) Contains(v int64) bool {
	if v < 0 {
		_, ok := s.neg[v]
		return ok
	}
	return s.rb.Contains(uint64(v))
}

// Len returns the number of ids in the set.
func (s *LongSet) Len() int {
	return int(s.rb.GetCardinality()) + len(s.neg)
}

// IsEmpty returns true if the set holds no ids.
func (s *LongSet) IsEmpty() bool {
	return len(s.neg) == 0 && s.rb.IsEmpty()
}

// All yields the ids in ascending order.
func (s *LongSet) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		if len(s.neg) > 0 {
			for _, v := range slices.Sorted(maps.Keys(s.neg)) {
				if !yield(v) {
					return
				}
			}
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int64(it.Next())) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (s *LongSet) Clone() *LongSet {
	c := &LongSet{
		rb: s.rb.Clone(),
	}
	if len(s.neg) > 0 {
		c.neg = maps.Clone(s.neg)
	}
	return c
}

// addSortedRun appends non-negative ascending ids in bulk.
func (s *LongSet) addSortedRun(vals []uint64) {
	s.rb.AddMany(vals)
}
