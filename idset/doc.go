// Package idset provides entity id set representations for cached query
// results.
//
// Two encodings satisfy the EntityIDSet capability:
//   - DenseSet: immutable single-type bit-vector over [min, max], chosen when
//     the id range is not much larger than the member count
//   - HashSet: general per-type set backed by roaring64 bitmaps, used as the
//     fallback and for the null entity
//
// A Selector decides between them once, at build time, from the sorted local
// id array of a cached result. Callers should not depend on which encoding
// they get; KindOf exists for metrics and tests.
package idset
