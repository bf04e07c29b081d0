// Package entitycache provides compact cached entity id results for an
// embedded database's query cache.
//
// A cached result is the ascending local ids of one entity type. It answers
// count, ordinal and traversal queries directly from the array, and builds a
// set view on demand. The set view is a bit-vector when the ids are dense
// enough and a roaring-backed hash set otherwise.
//
// # Quick Start
//
//	f, _ := entitycache.New(
//	    entitycache.WithLoadFactor(16),
//	    entitycache.WithLogLevel(slog.LevelDebug),
//	)
//
//	it := f.NewSortedIterable(txn, typeID, localIDs)
//	n := it.Count()
//	pos := it.IndexOf(core.NewEntityID(typeID, 42))
//	for id := range it.Backward() {
//	    fmt.Println(id)
//	}
//
//	set, err := it.ToSet() // built once, shared afterwards
//
// # Configuration
//
// The load factor and the bit-set switch can be bound to flags and loaded
// through viper:
//
//	fs := pflag.NewFlagSet("cache", pflag.ContinueOnError)
//	entitycache.RegisterFlags(fs)
//	v := viper.New()
//	_ = v.BindPFlags(fs)
//	cfg, _ := entitycache.LoadConfig(v)
//	f, _ := entitycache.New(entitycache.WithConfig(cfg))
//
// # Metrics
//
// Selections and set-cache hits are reported to a MetricsCollector. Use
// BasicMetricsCollector for in-process counters or NewPrometheusCollector to
// export them.
package entitycache
