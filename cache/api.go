package cache

import "context"

// Cache is the per-namespace view of a shared pool. All methods are safe
// for concurrent use by multiple goroutines.
//
// Typical complexity is amortized O(1): a map lookup plus constant-time
// list adjustments under the pool lock.
type Cache[K comparable, V any] interface {
	// Put inserts or overwrites k→v, weighing the value with the
	// namespace weigher (or the pool default). Insertion may evict the
	// least recently used entries of ANY namespace sharing the pool.
	Put(k K, v V) error

	// PutWeighted inserts or overwrites k→v with an explicit weight.
	PutWeighted(k K, v V, weight int64) error

	// Get returns the value for k and a presence flag. On hit, the entry
	// becomes the most recently used of the whole pool.
	Get(k K) (V, bool)

	// GetOrLoad returns the value for k, loading it on miss via the
	// namespace Loader. Concurrent loads for the same key are coalesced
	// (singleflight). Returns ErrNoLoader if no Loader was installed.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Remove deletes k if present and returns the removed value.
	// Removing an absent key is not an error.
	Remove(k K) (V, bool)

	// Contains reports whether k is resident without touching recency.
	Contains(k K) bool

	// Len returns the number of entries resident in this namespace.
	Len() int

	// Weight returns the summed weight of this namespace's entries (O(1)).
	Weight() int64

	// Name returns the namespace id.
	Name() string

	// Stats returns this namespace's hit/miss/eviction counters.
	Stats() Stats
}

// Compile-time check: the Namespace handle implements Cache.
var _ Cache[string, string] = (*Namespace[string, string])(nil)
