package idset

import (
	"iter"
	"math"

	"github.com/hupe1980/entitycache/core"
	"github.com/hupe1980/entitycache/internal/bitset"
)

// maxDenseRange is the exclusive upper bound for max-min+1 of a DenseSet.
const maxDenseRange = math.MaxInt32

// DenseSet is an immutable single-type set stored as a bit-vector over
// [min, max]. Bit k is set iff min+k is a member.
//
// A DenseSet is built once and never mutated; all mutators return
// ErrReadOnly. It is safe for concurrent readers.
type DenseSet struct {
	typeID int32
	size   int
	min    int64
	max    int64
	bits   *bitset.BitSet
}

// NewDenseSet builds a DenseSet from a non-empty, strictly ascending slice of
// local ids.
//
// It fails with a *RangeError if min < 0 or max-min+1 >= math.MaxInt32. The
// caller is expected to have checked range and density beforehand; see
// Selector.
func NewDenseSet(typeID int32, localIDs []int64) (*DenseSet, error) {
	if typeID == core.NullTypeID {
		return nil, ErrNullType
	}
	n := len(localIDs)
	if n == 0 {
		return nil, ErrEmptySource
	}

	lo, hi := localIDs[0], localIDs[n-1]
	if lo < 0 {
		return nil, &RangeError{TypeID: typeID, Min: lo, Max: hi, Err: ErrNegativeMin}
	}
	if hi < lo {
		return nil, ErrNotSorted
	}
	// hi-lo cannot overflow once lo >= 0; adding 1 can.
	if span := hi - lo; span >= maxDenseRange-1 {
		return nil, &RangeError{TypeID: typeID, Min: lo, Max: hi, Err: ErrRangeTooLarge}
	}

	bits := bitset.New(int(hi-lo) + 1)
	prev := lo - 1
	for _, v := range localIDs {
		if v <= prev || v > hi {
			return nil, ErrNotSorted
		}
		bits.Set(int(v - lo))
		prev = v
	}

	return &DenseSet{
		typeID: typeID,
		size:   n,
		min:    lo,
		max:    hi,
		bits:   bits,
	}, nil
}

// TypeID returns the single type id of the set.
func (d *DenseSet) TypeID() int32 { return d.typeID }

// Min returns the smallest member local id.
func (d *DenseSet) Min() int64 { return d.min }

// Max returns the largest member local id.
func (d *DenseSet) Max() int64 { return d.max }

// Add implements EntityIDSet. Always returns ErrReadOnly.
func (d *DenseSet) Add(int32, int64) error { return ErrReadOnly }

// AddID implements EntityIDSet. Always returns ErrReadOnly.
func (d *DenseSet) AddID(core.EntityID) error { return ErrReadOnly }

// Remove implements EntityIDSet. Always returns ErrReadOnly.
func (d *DenseSet) Remove(int32, int64) (bool, error) { return false, ErrReadOnly }

// RemoveID implements EntityIDSet. Always returns ErrReadOnly.
func (d *DenseSet) RemoveID(core.EntityID) (bool, error) { return false, ErrReadOnly }

// Contains implements EntityIDSet in O(1).
func (d *DenseSet) Contains(typeID int32, localID int64) bool {
	return typeID == d.typeID &&
		localID >= d.min &&
		localID <= d.max &&
		d.bits.Test(int(localID-d.min))
}

// ContainsID implements EntityIDSet. The null id is never a member.
func (d *DenseSet) ContainsID(id core.EntityID) bool {
	return !id.IsNull() && d.Contains(id.TypeID, id.LocalID)
}

// Count implements EntityIDSet.
func (d *DenseSet) Count() int {
	return d.size
}

// All yields the members in ascending order. The scan jumps between set bits,
// so its cost follows the member count rather than the range.
func (d *DenseSet) All() iter.Seq[core.EntityID] {
	return func(yield func(core.EntityID) bool) {
		for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
			if !yield(core.NewEntityID(d.typeID, int64(i)+d.min)) {
				return
			}
		}
	}
}

// TypeLocalIDs implements EntityIDSet.
func (d *DenseSet) TypeLocalIDs(typeID int32) *LongSet {
	result := NewLongSet()
	if typeID != d.typeID {
		return result
	}
	vals := make([]uint64, 0, d.size)
	for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
		vals = append(vals, uint64(int64(i)+d.min))
	}
	result.addSortedRun(vals)
	return result
}
