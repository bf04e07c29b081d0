package idset

import (
	"iter"

	"github.com/hupe1980/entitycache/core"
)

// EntityIDSet is the capability shared by all set encodings.
type EntityIDSet interface {
	// Add inserts (typeID, localID). Read-only sets return ErrReadOnly.
	Add(typeID int32, localID int64) error

	// AddID inserts id, which may be the null id.
	AddID(id core.EntityID) error

	// Remove deletes (typeID, localID) and reports whether it was present.
	Remove(typeID int32, localID int64) (bool, error)

	// RemoveID deletes id and reports whether it was present.
	RemoveID(id core.EntityID) (bool, error)

	// Contains reports whether (typeID, localID) is a member.
	Contains(typeID int32, localID int64) bool

	// ContainsID reports whether id is a member.
	ContainsID(id core.EntityID) bool

	// Count returns the number of members.
	Count() int

	// All yields every member. Each call starts a fresh traversal.
	All() iter.Seq[core.EntityID]

	// TypeLocalIDs returns an independent copy of the local ids stored for
	// typeID. The caller may mutate the result.
	TypeLocalIDs(typeID int32) *LongSet
}

// Kind names a set encoding.
type Kind int

const (
	KindUnknown Kind = iota
	KindHash
	KindDense
)

func (k Kind) String() string {
	switch k {
	case KindHash:
		return "hash"
	case KindDense:
		return "dense"
	default:
		return "unknown"
	}
}

// KindOf returns the encoding of s.
func KindOf(s EntityIDSet) Kind {
	switch s.(type) {
	case *HashSet:
		return KindHash
	case *DenseSet:
		return KindDense
	default:
		return KindUnknown
	}
}

var (
	_ EntityIDSet = (*HashSet)(nil)
	_ EntityIDSet = (*DenseSet)(nil)
)
