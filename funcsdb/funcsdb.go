// Package funcsdb implements the persistent per-catalog Record store: a
// primary table keyed by strong hash, secondary indexes over signature
// coordinates for top-k similarity retrieval, and the compatibility check
// that binds a catalog to the NumHashes it was created with.
//
// One Index handle corresponds to one open catalog directory. goleveldb
// locks the directory while a handle has it open, so Open of a catalog that
// another handle (in this process or another) still has open fails with an
// IndexError: handles on one catalog can follow one another but not overlap.
package funcsdb

// DefaultCacheSize bounds the number of Records kept in each Index
// handle's hot-record LRU cache.
const DefaultCacheSize = 256
