package entitycache

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/hupe1980/entitycache/idset"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector defines an interface for collecting operational metrics.
// It satisfies both idset.Recorder and cached.SetRecorder.
type MetricsCollector interface {
	// RecordSelection is called after each set selection.
	// kind is idset.KindUnknown when err is non-nil.
	RecordSelection(kind idset.Kind, size int, duration time.Duration, err error)

	// RecordSetCache is called on each ToSet of a cached result.
	// hit is false when the set view had to be built.
	RecordSetCache(hit bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSelection(idset.Kind, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSetCache(bool)                                   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DenseSelections     atomic.Int64
	HashSelections      atomic.Int64
	SelectionErrors     atomic.Int64
	SelectedIDs         atomic.Int64
	SelectionTotalNanos atomic.Int64
	SetCacheHits        atomic.Int64
	SetCacheMisses      atomic.Int64
}

// RecordSelection implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSelection(kind idset.Kind, size int, duration time.Duration, err error) {
	b.SelectionTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SelectionErrors.Add(1)
		return
	}
	b.SelectedIDs.Add(int64(size))
	switch kind {
	case idset.KindDense:
		b.DenseSelections.Add(1)
	case idset.KindHash:
		b.HashSelections.Add(1)
	}
}

// RecordSetCache implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSetCache(hit bool) {
	if hit {
		b.SetCacheHits.Add(1)
	} else {
		b.SetCacheMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		DenseSelections:   b.DenseSelections.Load(),
		HashSelections:    b.HashSelections.Load(),
		SelectionErrors:   b.SelectionErrors.Load(),
		SelectedIDs:       b.SelectedIDs.Load(),
		SelectionAvgNanos: b.getAvgSelectionNanos(),
		SetCacheHits:      b.SetCacheHits.Load(),
		SetCacheMisses:    b.SetCacheMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSelectionNanos() int64 {
	count := b.DenseSelections.Load() + b.HashSelections.Load() + b.SelectionErrors.Load()
	if count == 0 {
		return 0
	}
	return b.SelectionTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	DenseSelections   int64
	HashSelections    int64
	SelectionErrors   int64
	SelectedIDs       int64
	SelectionAvgNanos int64
	SetCacheHits      int64
	SetCacheMisses    int64
}

// PrometheusCollector exports MetricsCollector events as Prometheus metrics.
type PrometheusCollector struct {
	selections        *prometheus.CounterVec
	selectionErrors   prometheus.Counter
	selectionSize     prometheus.Histogram
	selectionDuration prometheus.Histogram
	setCache          *prometheus.CounterVec
}

// NewPrometheusCollector creates a PrometheusCollector and registers its
// metrics with registerer under namespace.
func NewPrometheusCollector(namespace string, registerer prometheus.Registerer) (*PrometheusCollector, error) {
	p := &PrometheusCollector{}
	if err := p.initialize(namespace, registerer); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PrometheusCollector) initialize(namespace string, registerer prometheus.Registerer) error {
	p.selections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "id_set_selections",
		Help:      "Number of id sets built, by encoding",
	}, []string{"kind"})
	p.selectionErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "id_set_selection_errors",
		Help:      "Number of id set builds rejected by a precondition",
	})
	p.selectionSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "id_set_selection_size",
		Help:      "Number of local ids per id set build",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	})
	p.selectionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "id_set_selection_duration_seconds",
		Help:      "Time spent building id sets",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	})
	p.setCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "id_set_cache_lookups",
		Help:      "Number of set view lookups on cached results, by result",
	}, []string{"result"})

	return errors.Join(
		registerer.Register(p.selections),
		registerer.Register(p.selectionErrors),
		registerer.Register(p.selectionSize),
		registerer.Register(p.selectionDuration),
		registerer.Register(p.setCache),
	)
}

// RecordSelection implements MetricsCollector.
func (p *PrometheusCollector) RecordSelection(kind idset.Kind, size int, duration time.Duration, err error) {
	p.selectionDuration.Observe(duration.Seconds())
	if err != nil {
		p.selectionErrors.Inc()
		return
	}
	p.selections.WithLabelValues(kind.String()).Inc()
	p.selectionSize.Observe(float64(size))
}

// RecordSetCache implements MetricsCollector.
func (p *PrometheusCollector) RecordSetCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.setCache.WithLabelValues(result).Inc()
}
