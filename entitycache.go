package entitycache

import (
	"context"
	"iter"
	"slices"

	"github.com/hupe1980/entitycache/cached"
	"github.com/hupe1980/entitycache/core"
	"github.com/hupe1980/entitycache/idset"
)

// Factory creates cached results that share one selection policy, logger and
// metrics collector. It is safe for concurrent use.
type Factory struct {
	selector *idset.Selector
	logger   *Logger
	metrics  MetricsCollector
}

// New creates a Factory.
func New(optFns ...Option) (*Factory, error) {
	o := applyOptions(optFns)

	cfg := Config{LoadFactor: o.loadFactor, UseBitSets: o.useBitSets}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	selector, err := idset.NewSelector(func(so *idset.SelectorOptions) {
		so.LoadFactor = cfg.LoadFactor
		so.UseBitSets = cfg.UseBitSets
		so.Logger = o.logger
		so.Recorder = o.metricsCollector
	})
	if err != nil {
		return nil, err
	}

	o.logger.LogConfig(context.Background(), cfg.LoadFactor, cfg.UseBitSets)

	return &Factory{
		selector: selector,
		logger:   o.logger,
		metrics:  o.metricsCollector,
	}, nil
}

// Selector returns the selection policy shared by the factory's results.
func (f *Factory) Selector() *idset.Selector {
	return f.selector
}

// NewSortedIterable wraps strictly ascending local ids of typeID. Ownership of
// localIDs passes to the result.
func (f *Factory) NewSortedIterable(txn cached.Txn, typeID int32, localIDs []int64, opts ...cached.Option) *cached.SortedArrayIterable {
	return cached.NewSortedArrayIterable(txn, f.selector, typeID, localIDs, f.iterableOptions(opts)...)
}

// NewNullIterable creates a result of count null entities.
func (f *Factory) NewNullIterable(txn cached.Txn, count int, opts ...cached.Option) *cached.SortedArrayIterable {
	return cached.NewNullIterable(txn, f.selector, count, f.iterableOptions(opts)...)
}

// Collect materializes ids into a cached result.
//
// All ids must share one type; the first id of another type fails with an
// *ErrTypeMismatch. Unordered input is sorted and duplicates are dropped.
// A sequence of null ids becomes a null result with one element per id, and
// an empty sequence becomes an empty null result.
func (f *Factory) Collect(ctx context.Context, txn cached.Txn, ids iter.Seq[core.EntityID]) (*cached.SortedArrayIterable, error) {
	typeID := core.NullTypeID
	sorted := true
	nulls := 0
	var localIDs []int64
	var prev core.EntityID

	pos := 0
	for id := range ids {
		if pos == 0 {
			typeID = id.TypeID
		} else if id.TypeID != typeID {
			err := &ErrTypeMismatch{Expected: typeID, Actual: id.TypeID, Position: pos}
			f.logger.LogCollect(ctx, typeID, pos, false, err)
			return nil, err
		}
		pos++

		if id.IsNull() {
			nulls++
			continue
		}
		if len(localIDs) > 0 && prev.Compare(id) >= 0 {
			sorted = false
		}
		localIDs = append(localIDs, id.LocalID)
		prev = id
	}

	if typeID == core.NullTypeID {
		f.logger.LogCollect(ctx, typeID, nulls, true, nil)
		return f.NewNullIterable(txn, nulls), nil
	}

	if !sorted {
		slices.Sort(localIDs)
		localIDs = slices.Compact(localIDs)
	}
	f.logger.LogCollect(ctx, typeID, len(localIDs), sorted, nil)
	return f.NewSortedIterable(txn, typeID, localIDs), nil
}

func (f *Factory) iterableOptions(opts []cached.Option) []cached.Option {
	return append([]cached.Option{cached.WithSetRecorder(f.metrics)}, opts...)
}
