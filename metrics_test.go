package entitycache

import (
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/entitycache/idset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	b := &BasicMetricsCollector{}
	assert.Zero(t, b.GetStats().SelectionAvgNanos)

	b.RecordSelection(idset.KindDense, 10, 2*time.Microsecond, nil)
	b.RecordSelection(idset.KindHash, 4, 4*time.Microsecond, nil)
	b.RecordSelection(idset.KindUnknown, 3, 0, errors.New("boom"))
	b.RecordSetCache(true)
	b.RecordSetCache(false)

	stats := b.GetStats()
	assert.Equal(t, BasicMetricsStats{
		DenseSelections:   1,
		HashSelections:    1,
		SelectionErrors:   1,
		SelectedIDs:       14,
		SelectionAvgNanos: 2000,
		SetCacheHits:      1,
		SetCacheMisses:    1,
	}, stats)
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewPrometheusCollector("entitycache", reg)
	require.NoError(t, err)

	f, err := New(WithLoadFactor(2), WithMetricsCollector(p))
	require.NoError(t, err)

	dense := f.NewSortedIterable(nil, 1, []int64{1, 2, 3})
	_, err = dense.ToSet()
	require.NoError(t, err)
	_, err = dense.ToSet()
	require.NoError(t, err)
	_, err = f.NewSortedIterable(nil, 1, []int64{1, 50}).ToSet()
	require.NoError(t, err)
	_, err = f.NewSortedIterable(nil, 1, []int64{2, 2}).ToSet()
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.selections.WithLabelValues("dense")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.selections.WithLabelValues("hash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.selectionErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.setCache.WithLabelValues("hit")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.setCache.WithLabelValues("miss")))
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestPrometheusCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusCollector("entitycache", reg)
	require.NoError(t, err)

	_, err = NewPrometheusCollector("entitycache", reg)
	assert.Error(t, err)
}
