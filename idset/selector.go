package idset

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/entitycache/core"
)

// DefaultLoadFactor is the default maximum ratio of addressable range to
// member count for which a dense set is built.
const DefaultLoadFactor = 64.0

// Recorder receives one call per selection.
type Recorder interface {
	RecordSelection(kind Kind, size int, duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordSelection(Kind, int, time.Duration, error) {}

// SelectionLogger receives one call per selection. kind is KindUnknown when
// err is non-nil.
type SelectionLogger interface {
	LogSelection(ctx context.Context, typeID int32, count int, kind Kind, d time.Duration, err error)
}

type noopSelectionLogger struct{}

func (noopSelectionLogger) LogSelection(context.Context, int32, int, Kind, time.Duration, error) {}

// SelectorOptions configures a Selector.
type SelectorOptions struct {
	// LoadFactor is the maximum tolerable range/count ratio for a dense set.
	// Must be positive.
	LoadFactor float64

	// UseBitSets enables dense selection. When false every input falls back
	// to a HashSet.
	UseBitSets bool

	// Logger receives one entry per selection. Nil discards.
	Logger SelectionLogger

	// Recorder receives selection metrics. Nil discards.
	Recorder Recorder
}

// Selector chooses and builds the set encoding for a sorted local id array.
// It holds no mutable state and is safe for concurrent use.
type Selector struct {
	loadFactor float64
	useBitSets bool
	logger     SelectionLogger
	recorder   Recorder
}

// NewSelector creates a Selector. Without options it uses DefaultLoadFactor
// with bit sets enabled.
func NewSelector(optFns ...func(o *SelectorOptions)) (*Selector, error) {
	opts := SelectorOptions{
		LoadFactor: DefaultLoadFactor,
		UseBitSets: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if !(opts.LoadFactor > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoadFactor, opts.LoadFactor)
	}
	if opts.Logger == nil {
		opts.Logger = noopSelectionLogger{}
	}
	if opts.Recorder == nil {
		opts.Recorder = noopRecorder{}
	}

	return &Selector{
		loadFactor: opts.LoadFactor,
		useBitSets: opts.UseBitSets,
		logger:     opts.Logger,
		recorder:   opts.Recorder,
	}, nil
}

// LoadFactor returns the configured compression load factor.
func (s *Selector) LoadFactor() float64 { return s.loadFactor }

// UseBitSets reports whether dense selection is enabled.
func (s *Selector) UseBitSets() bool { return s.useBitSets }

// Select builds the set view of a single-type result. localIDs must be
// strictly ascending; for core.NullTypeID only its length matters and the
// result holds exactly the null id.
//
// Errors from dense construction are returned unchanged in kind; no partially
// built set is ever returned alongside an error.
func (s *Selector) Select(typeID int32, localIDs []int64) (EntityIDSet, error) {
	start := time.Now()
	set, err := s.build(typeID, localIDs)
	elapsed := time.Since(start)

	kind := KindOf(set)
	s.recorder.RecordSelection(kind, len(localIDs), elapsed, err)
	s.logger.LogSelection(context.Background(), typeID, len(localIDs), kind, elapsed, err)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// NullSet returns a frozen set holding only the null id.
func NullSet() *HashSet {
	s := NewHashSet()
	_ = s.AddID(core.NullID)
	return s.Freeze()
}

func (s *Selector) build(typeID int32, localIDs []int64) (EntityIDSet, error) {
	if typeID == core.NullTypeID {
		return NullSet(), nil
	}

	n := len(localIDs)
	if s.useBitSets {
		switch {
		case n == 1:
			result := NewHashSet()
			_ = result.Add(typeID, localIDs[0])
			return result.Freeze(), nil
		case n > 1 && s.dense(localIDs):
			d, err := NewDenseSet(typeID, localIDs)
			if err != nil {
				return nil, fmt.Errorf("build dense set for type %d: %w", typeID, err)
			}
			return d, nil
		}
	}

	result := NewHashSet()
	for _, localID := range localIDs {
		_ = result.Add(typeID, localID)
	}
	return result.Freeze(), nil
}

// dense reports whether a sorted array of at least two ids is addressable and
// compact enough for a DenseSet.
func (s *Selector) dense(localIDs []int64) bool {
	lo, hi := localIDs[0], localIDs[len(localIDs)-1]
	if lo < 0 || hi < lo {
		return false
	}
	span := hi - lo
	if span >= maxDenseRange-1 {
		return false
	}
	return float64(span+1) <= s.loadFactor*float64(len(localIDs))
}
