package cached

import (
	"iter"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/entitycache/core"
	"github.com/hupe1980/entitycache/idset"
)

// Txn is the transaction handle a cached result was read under. It is passed
// through untouched.
type Txn any

// SetRecorder receives one call per ToSet.
type SetRecorder interface {
	RecordSetCache(hit bool)
}

// Option configures a SortedArrayIterable.
type Option func(*SortedArrayIterable)

// WithIDSet installs a pre-built set view so ToSet never has to compute one.
func WithIDSet(set idset.EntityIDSet) Option {
	return func(s *SortedArrayIterable) {
		if set != nil {
			s.idSet.Store(&setRef{set: set})
		}
	}
}

// WithSetRecorder reports memo hits and misses of ToSet.
func WithSetRecorder(r SetRecorder) Option {
	return func(s *SortedArrayIterable) {
		s.recorder = r
	}
}

var defaultSelector = mustSelector(idset.NewSelector())

func mustSelector(s *idset.Selector, err error) *idset.Selector {
	if err != nil {
		panic(err)
	}
	return s
}

// setRef boxes the interface so it can be published by atomic.Pointer.
type setRef struct {
	set idset.EntityIDSet
}

// SortedArrayIterable is an immutable cached result holding the ascending
// local ids of a single entity type.
//
// For core.NullTypeID only the number of null entities is kept.
type SortedArrayIterable struct {
	txn      Txn
	typeID   int32
	localIDs []int64
	count    int
	selector *idset.Selector
	recorder SetRecorder

	idSet atomic.Pointer[setRef]
}

// NewSortedArrayIterable wraps localIDs, which must be strictly ascending and
// must not be modified by the caller afterwards. For core.NullTypeID only
// len(localIDs) is retained. A nil selector means idset defaults.
func NewSortedArrayIterable(txn Txn, selector *idset.Selector, typeID int32, localIDs []int64, opts ...Option) *SortedArrayIterable {
	if selector == nil {
		selector = defaultSelector
	}
	s := &SortedArrayIterable{
		txn:      txn,
		typeID:   typeID,
		localIDs: localIDs,
		count:    len(localIDs),
		selector: selector,
	}
	if typeID == core.NullTypeID {
		s.localIDs = nil
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewNullIterable creates a result of count null entities.
func NewNullIterable(txn Txn, selector *idset.Selector, count int, opts ...Option) *SortedArrayIterable {
	s := NewSortedArrayIterable(txn, selector, core.NullTypeID, nil, opts...)
	s.count = max(count, 0)
	return s
}

// Txn returns the handle the result was created with.
func (s *SortedArrayIterable) Txn() Txn { return s.txn }

// EntityTypeID returns the type id of every element, possibly core.NullTypeID.
func (s *SortedArrayIterable) EntityTypeID() int32 { return s.typeID }

// IsSortedByID is always true.
func (s *SortedArrayIterable) IsSortedByID() bool { return true }

// OrderByID returns s, which is already ordered.
func (s *SortedArrayIterable) OrderByID() *SortedArrayIterable { return s }

// Count returns the number of elements without scanning.
func (s *SortedArrayIterable) Count() int64 { return int64(s.count) }

// IndexOf returns the ordinal position of id, or -1 if id is absent or of a
// different type. It binary searches the local ids of a typed result.
//
// A null result holds no local ids, so no search runs: IndexOf(core.NullID)
// is 0 when Count() > 0 and -1 otherwise, whatever the local id of the
// argument.
func (s *SortedArrayIterable) IndexOf(id core.EntityID) int {
	if id.TypeID != s.typeID {
		return -1
	}
	if s.typeID == core.NullTypeID {
		if s.count > 0 {
			return 0
		}
		return -1
	}
	if i, found := slices.BinarySearch(s.localIDs, id.LocalID); found {
		return i
	}
	return -1
}

// Contains reports whether id is an element.
func (s *SortedArrayIterable) Contains(id core.EntityID) bool {
	return s.IndexOf(id) >= 0
}

// At returns the element at ordinal position i.
func (s *SortedArrayIterable) At(i int) (core.EntityID, bool) {
	if i < 0 || i >= s.count {
		return core.EntityID{}, false
	}
	if s.typeID == core.NullTypeID {
		return core.NullID, true
	}
	return core.NewEntityID(s.typeID, s.localIDs[i]), true
}

// First returns the smallest element.
func (s *SortedArrayIterable) First() (core.EntityID, bool) {
	return s.At(0)
}

// Last returns the largest element.
func (s *SortedArrayIterable) Last() (core.EntityID, bool) {
	return s.At(s.count - 1)
}

// Iterator returns a fresh ascending cursor.
func (s *SortedArrayIterable) Iterator() *Iterator {
	return newIterator(s.typeID, s.localIDs, s.count, false)
}

// ReverseIterator returns a fresh descending cursor.
func (s *SortedArrayIterable) ReverseIterator() *Iterator {
	return newIterator(s.typeID, s.localIDs, s.count, true)
}

// All yields the elements in ascending order.
func (s *SortedArrayIterable) All() iter.Seq[core.EntityID] {
	return func(yield func(core.EntityID) bool) {
		it := s.Iterator()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Backward yields the elements in descending order.
func (s *SortedArrayIterable) Backward() iter.Seq[core.EntityID] {
	return func(yield func(core.EntityID) bool) {
		it := s.ReverseIterator()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// ToSet returns the set view of the result, building it on first use.
//
// Concurrent first calls may each build a set; the first one published wins
// and is returned to everyone. A build error is returned without publishing
// anything, so a later call retries.
func (s *SortedArrayIterable) ToSet() (idset.EntityIDSet, error) {
	if ref := s.idSet.Load(); ref != nil {
		s.recordSetCache(true)
		return ref.set, nil
	}
	s.recordSetCache(false)

	set, err := s.selector.Select(s.typeID, s.localIDs)
	if err != nil {
		return nil, err
	}

	ref := &setRef{set: set}
	if !s.idSet.CompareAndSwap(nil, ref) {
		ref = s.idSet.Load()
	}
	return ref.set, nil
}

func (s *SortedArrayIterable) recordSetCache(hit bool) {
	if s.recorder != nil {
		s.recorder.RecordSetCache(hit)
	}
}
