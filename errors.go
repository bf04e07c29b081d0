package entitycache

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedTypes is returned by Factory.Collect when ids of more than one
	// entity type are supplied.
	ErrMixedTypes = errors.New("entitycache: ids of more than one entity type")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("entitycache: invalid config")
)

// ErrTypeMismatch reports the first id of Collect whose type differs from the
// type established by the preceding ids.
//
// It matches ErrMixedTypes via errors.Is.
type ErrTypeMismatch struct {
	Expected int32
	Actual   int32
	Position int
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("entitycache: type mismatch at position %d: expected %d, got %d", e.Position, e.Expected, e.Actual)
}

func (e *ErrTypeMismatch) Unwrap() error { return ErrMixedTypes }
