// Package cached provides immutable cached query results over sorted entity
// id arrays.
//
// A SortedArrayIterable wraps the ascending local ids of one entity type (or
// a count of null entities) and answers count, ordinal and traversal queries
// without rescanning. Its set view is built lazily on the first ToSet call and
// published through an atomic pointer, so concurrent readers never block:
// racing builders each compute an equal set and all but one result is
// dropped.
package cached
