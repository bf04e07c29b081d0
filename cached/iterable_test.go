package cached

import (
	"slices"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/entitycache/core"
	"github.com/hupe1980/entitycache/idset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeTxn struct{ id int }

type countingRecorder struct {
	hits, misses atomic.Int64
}

func (r *countingRecorder) RecordSetCache(hit bool) {
	if hit {
		r.hits.Add(1)
	} else {
		r.misses.Add(1)
	}
}

func newSelector(t *testing.T, loadFactor float64) *idset.Selector {
	t.Helper()
	s, err := idset.NewSelector(func(o *idset.SelectorOptions) {
		o.LoadFactor = loadFactor
	})
	require.NoError(t, err)
	return s
}

func ids(typeID int32, localIDs ...int64) []core.EntityID {
	out := make([]core.EntityID, len(localIDs))
	for i, v := range localIDs {
		out[i] = core.NewEntityID(typeID, v)
	}
	return out
}

func TestSortedArrayIterable(t *testing.T) {
	txn := &fakeTxn{id: 1}
	src := []int64{3, 8, 15, 16, 23, 42}
	it := NewSortedArrayIterable(txn, nil, 4, src)

	assert.Same(t, txn, it.Txn())
	assert.Equal(t, int32(4), it.EntityTypeID())
	assert.True(t, it.IsSortedByID())
	assert.Same(t, it, it.OrderByID())
	assert.Equal(t, int64(6), it.Count())

	assert.Equal(t, ids(4, src...), slices.Collect(it.All()))
	assert.Equal(t, ids(4, 42, 23, 16, 15, 8, 3), slices.Collect(it.Backward()))

	first, ok := it.First()
	require.True(t, ok)
	assert.Equal(t, core.NewEntityID(4, 3), first)

	last, ok := it.Last()
	require.True(t, ok)
	assert.Equal(t, core.NewEntityID(4, 42), last)

	_, ok = it.At(6)
	assert.False(t, ok)
	_, ok = it.At(-1)
	assert.False(t, ok)
}

func TestSortedArrayIterable_IndexOf(t *testing.T) {
	src := []int64{3, 8, 15, 16, 23, 42}
	it := NewSortedArrayIterable(nil, nil, 4, src)

	for i, v := range src {
		assert.Equal(t, i, it.IndexOf(core.NewEntityID(4, v)))
		assert.True(t, it.Contains(core.NewEntityID(4, v)))
	}

	for _, id := range []core.EntityID{
		core.NewEntityID(4, 0),
		core.NewEntityID(4, 9),
		core.NewEntityID(4, 100),
		core.NewEntityID(5, 8),
		core.NullID,
	} {
		assert.Equal(t, -1, it.IndexOf(id), "%v", id)
		assert.False(t, it.Contains(id))
	}
}

func TestSortedArrayIterable_Empty(t *testing.T) {
	it := NewSortedArrayIterable(nil, nil, 1, nil)

	assert.Zero(t, it.Count())
	assert.Empty(t, slices.Collect(it.All()))
	assert.Empty(t, slices.Collect(it.Backward()))
	assert.Equal(t, -1, it.IndexOf(core.NewEntityID(1, 0)))

	_, ok := it.First()
	assert.False(t, ok)
	_, ok = it.Last()
	assert.False(t, ok)

	set, err := it.ToSet()
	require.NoError(t, err)
	assert.Zero(t, set.Count())
	assert.NotEqual(t, idset.KindDense, idset.KindOf(set))
}

func TestSortedArrayIterable_NullType(t *testing.T) {
	for _, k := range []int{0, 1, 5} {
		it := NewSortedArrayIterable(nil, nil, core.NullTypeID, make([]int64, k))

		assert.Equal(t, int64(k), it.Count())
		assert.Equal(t, core.NullTypeID, it.EntityTypeID())

		fwd := slices.Collect(it.All())
		rev := slices.Collect(it.Backward())
		assert.Len(t, fwd, k)
		assert.Len(t, rev, k)
		for _, id := range append(fwd, rev...) {
			assert.True(t, id.IsNull())
		}

		set, err := it.ToSet()
		require.NoError(t, err)
		assert.Equal(t, 1, set.Count())
		assert.True(t, set.ContainsID(core.NullID))

		if k > 0 {
			assert.Equal(t, 0, it.IndexOf(core.NullID))
			assert.Equal(t, 0, it.IndexOf(core.EntityID{TypeID: core.NullTypeID, LocalID: 99}))
			v, ok := it.At(k - 1)
			require.True(t, ok)
			assert.True(t, v.IsNull())
		} else {
			assert.Equal(t, -1, it.IndexOf(core.NullID))
		}
		assert.Equal(t, -1, it.IndexOf(core.NewEntityID(0, 0)))
	}
}

func TestNewNullIterable(t *testing.T) {
	it := NewNullIterable(nil, nil, 3)
	assert.Equal(t, int64(3), it.Count())
	assert.Equal(t, []core.EntityID{core.NullID, core.NullID, core.NullID}, slices.Collect(it.All()))

	assert.Zero(t, NewNullIterable(nil, nil, -2).Count())
}

func TestSortedArrayIterable_ToSet(t *testing.T) {
	sel := newSelector(t, 2.0)

	sparse := NewSortedArrayIterable(nil, sel, 5, []int64{10, 11, 12, 13, 20})
	set, err := sparse.ToSet()
	require.NoError(t, err)
	assert.Equal(t, idset.KindHash, idset.KindOf(set))

	dense := NewSortedArrayIterable(nil, sel, 5, []int64{10, 11, 12, 13, 14})
	set, err = dense.ToSet()
	require.NoError(t, err)
	assert.Equal(t, idset.KindDense, idset.KindOf(set))
	assert.True(t, set.Contains(5, 14))
	assert.False(t, set.Contains(5, 15))
	assert.Equal(t, ids(5, 10, 11, 12, 13, 14), slices.Collect(set.All()))
}

func TestSortedArrayIterable_ToSetMemoized(t *testing.T) {
	rec := &countingRecorder{}
	it := NewSortedArrayIterable(nil, nil, 1, []int64{1, 2, 3}, WithSetRecorder(rec))

	first, err := it.ToSet()
	require.NoError(t, err)
	second, err := it.ToSet()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), rec.misses.Load())
	assert.Equal(t, int64(1), rec.hits.Load())
}

func TestSortedArrayIterable_ToSetConcurrent(t *testing.T) {
	src := make([]int64, 0, 10_000)
	for i := int64(0); i < 20_000; i += 2 {
		src = append(src, i)
	}
	it := NewSortedArrayIterable(nil, nil, 9, src)

	const readers = 16
	sets := make([]idset.EntityIDSet, readers)

	var g errgroup.Group
	for i := range readers {
		g.Go(func() error {
			set, err := it.ToSet()
			sets[i] = set
			return err
		})
	}
	require.NoError(t, g.Wait())

	final, err := it.ToSet()
	require.NoError(t, err)
	for _, set := range sets {
		assert.Same(t, final, set)
	}
	assert.Equal(t, len(src), final.Count())
	for _, v := range []int64{0, 2, 19_998} {
		assert.True(t, final.Contains(9, v))
	}
	assert.False(t, final.Contains(9, 1))
}

func TestSortedArrayIterable_WithIDSet(t *testing.T) {
	preset := idset.NewHashSet()
	require.NoError(t, preset.Add(1, 99))
	preset.Freeze()

	it := NewSortedArrayIterable(nil, nil, 1, []int64{1, 2}, WithIDSet(preset))
	set, err := it.ToSet()
	require.NoError(t, err)
	assert.Same(t, preset, set)
}

func TestSortedArrayIterable_ToSetError(t *testing.T) {
	// Duplicates pass the density check but fail dense construction.
	it := NewSortedArrayIterable(nil, nil, 1, []int64{1, 1, 2})

	set, err := it.ToSet()
	assert.ErrorIs(t, err, idset.ErrNotSorted)
	assert.Nil(t, set)

	// Nothing was published.
	_, err = it.ToSet()
	assert.ErrorIs(t, err, idset.ErrNotSorted)
}

func BenchmarkSortedArrayIterable_IndexOf(b *testing.B) {
	src := make([]int64, 100_000)
	for i := range src {
		src[i] = int64(i * 3)
	}
	it := NewSortedArrayIterable(nil, nil, 1, src)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = it.IndexOf(core.NewEntityID(1, int64(i%300_000)))
	}
}
