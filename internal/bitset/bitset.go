package bitset

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// BitSet is a fixed-length bit-vector.
type BitSet struct {
	bits *bitset.BitSet
	size int
}

// New creates a BitSet holding size bits, all unset.
func New(size int) *BitSet {
	if size < 0 {
		panic(fmt.Sprintf("bitset.New: negative size %d", size))
	}
	return &BitSet{
		bits: bitset.New(uint(size)),
		size: size,
	}
}

// Set sets the bit at index i.
// It panics when i is outside [0, Len()).
func (b *BitSet) Set(i int) {
	if i < 0 || i >= b.size {
		panic(fmt.Sprintf("bitset.Set: index %d out of bounds (size %d)", i, b.size))
	}
	b.bits.Set(uint(i))
}

// Test returns true if the bit at index i is set.
// Indices outside [0, Len()) are reported as unset.
func (b *BitSet) Test(i int) bool {
	if i < 0 || i >= b.size {
		return false
	}
	return b.bits.Test(uint(i))
}

// NextSet returns the index of the next set bit starting from i (inclusive)
// and true, or false if no bit is set at or after i.
func (b *BitSet) NextSet(i int) (int, bool) {
	if i < 0 {
		i = 0
	}
	if i >= b.size {
		return 0, false
	}
	next, ok := b.bits.NextSet(uint(i))
	if !ok || next >= uint(b.size) {
		return 0, false
	}
	return int(next), true
}

// Len returns the size of the bitset in bits.
func (b *BitSet) Len() int {
	return b.size
}
