package idset

import (
	"errors"
	"fmt"
)

var (
	// ErrReadOnly is returned when a mutation is attempted on a read-only set.
	// Dense sets are always read-only; hash sets become read-only once frozen.
	ErrReadOnly = errors.New("idset: set is read-only")

	// ErrEmptySource is returned when a dense set is built from no ids.
	ErrEmptySource = errors.New("idset: empty source")

	// ErrNegativeMin is returned when a dense set would start below zero.
	ErrNegativeMin = errors.New("idset: negative minimum local id")

	// ErrRangeTooLarge is returned when max-min+1 does not fit a 32-bit bit index.
	ErrRangeTooLarge = errors.New("idset: local id range too large")

	// ErrNotSorted is returned when a dense set source is not strictly ascending.
	ErrNotSorted = errors.New("idset: source not strictly ascending")

	// ErrNullType is returned when a dense set is requested for the null type.
	ErrNullType = errors.New("idset: dense set cannot hold the null type")

	// ErrInvalidLoadFactor is returned when the compression load factor is not positive.
	ErrInvalidLoadFactor = errors.New("idset: load factor must be positive")
)

// RangeError reports a local id range a dense set cannot address.
//
// The underlying sentinel (ErrNegativeMin or ErrRangeTooLarge) can be matched
// with errors.Is.
type RangeError struct {
	TypeID int32
	Min    int64
	Max    int64
	Err    error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: type %d, range [%d, %d]", e.Err, e.TypeID, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return e.Err }
