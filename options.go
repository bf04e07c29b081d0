package entitycache

import (
	"log/slog"

	"github.com/hupe1980/entitycache/idset"
)

type options struct {
	loadFactor       float64
	useBitSets       bool
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Factory construction.
type Option func(*options)

// WithLoadFactor sets the maximum ratio of addressable range to member count
// for which a cached result's set view is stored as a bit-vector.
//
// Larger values favor bit-vectors (faster membership, more memory for sparse
// ranges). Must be positive; New rejects anything else.
//
// Default: idset.DefaultLoadFactor.
func WithLoadFactor(loadFactor float64) Option {
	return func(o *options) {
		o.loadFactor = loadFactor
	}
}

// WithBitSets enables or disables bit-vector set views. When disabled every
// set view is a hash set.
//
// Default: enabled.
func WithBitSets(enabled bool) Option {
	return func(o *options) {
		o.useBitSets = enabled
	}
}

// WithConfig applies a Config loaded through LoadConfig.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.loadFactor = cfg.LoadFactor
		o.useBitSets = cfg.UseBitSets
	}
}

// WithMetricsCollector configures a metrics collector for set selection and
// set-view cache lookups. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &entitycache.BasicMetricsCollector{}
//	f, _ := entitycache.New(entitycache.WithMetricsCollector(metrics))
//	// ... use f ...
//	stats := metrics.GetStats()
//	fmt.Printf("dense: %d, hash: %d\n", stats.DenseSelections, stats.HashSelections)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := entitycache.NewJSONLogger(slog.LevelInfo)
//	f, _ := entitycache.New(entitycache.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		loadFactor:       idset.DefaultLoadFactor,
		useBitSets:       true,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}
