// Package bitset provides a fixed-length bit-vector for dense id sets.
//
// It wraps github.com/bits-and-blooms/bitset with int indices and a hard
// length: the underlying set grows on out-of-range writes, this one panics.
// Bits are written only while the owner is building; afterwards the vector is
// shared read-only and needs no synchronization.
//
// Used internally for:
//   - Dense single-type entity id sets (idset.DenseSet)
package bitset
