// Package cache implements a shared-capacity LRU pool: a single recency
// ordering, sized in weight units (typically bytes), shared by many
// independent logical caches ("namespaces") within one process. Each
// namespace behaves like its own LRU cache, but all namespaces draw from
// the same budget: inserting into one namespace may evict the least
// recently used entry of a completely different namespace. This bounds a
// process's total cache memory across heterogeneous subsystems without
// statically partitioning it: recency, not fixed quotas, decides who
// keeps space.
//
// Design
//
//   - Storage: the pool owns one map per namespace (key → entry) and a
//     single intrusive MRU↔LRU doubly linked list spanning every entry of
//     every namespace. All operations are O(1) expected.
//
//   - Concurrency: one RWMutex guards the recency list, every namespace
//     table, and all weight accounting. Eviction must atomically touch a
//     victim's table and the shared list, so this lock is a single
//     serialization point: the inherent scalability ceiling of a
//     globally ordered cache. Namespace handle resolution is kept off
//     that lock by a read-mostly registry sharded into power-of-two
//     RWMutex buckets; hit/miss counters are cache-line-padded atomics.
//
//   - Weights: each entry's weight is computed once at insertion by a
//     weigher (per-namespace, pool default, or 1) and never mutated; an
//     overwriting Put replaces the entry. Weighers run outside the
//     structural lock.
//
//   - Eviction: after any insertion that grows the total weight, tail
//     entries are popped until the total fits the capacity again,
//     regardless of which namespace owns them. The one exception: an
//     entry is never evicted by the operation that inserted it. A single
//     entry heavier than the whole pool therefore survives its own
//     insertion with the capacity transiently exceeded: the caller is
//     warned through OnOversized/Metrics, and the next insertion
//     anywhere evicts it since it already sits at the tail.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     singleflight. If no Loader is installed, GetOrLoad returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives namespace-labeled
//     Hit/Miss/Evict/Oversized/Size signals. NoopMetrics is the default;
//     adapters for Prometheus and zap live under metrics/.
//
//   - Callbacks: Options.OnEvict(ns, k, v, reason) fires for every entry
//     the pool removes on its own (capacity victims and overwritten
//     entries); Options.OnOversized warns about entries that exceed the
//     capacity single-handedly.
//
// Basic usage
//
//	// One pool, 64 MiB budget, shared by two caches.
//	pool, err := cache.New(cache.Options{Capacity: 64 << 20})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	thumbs := cache.NewNamespace[string, []byte](pool, "thumbnails",
//	    cache.WithWeigher[string, []byte](weigher.Bytes))
//	dns := cache.NewNamespace[string, string](pool, "dns",
//	    cache.WithWeigher[string, string](weigher.String))
//
//	_ = thumbs.Put("cat.jpg", data) // may evict a dns entry if the pool is full
//	if v, ok := dns.Get("example.com"); ok {
//	    _ = v
//	}
//
// With GetOrLoad (singleflight)
//
//	resolve := cache.NewNamespace[string, string](pool, "dns",
//	    cache.WithLoader[string, string](func(ctx context.Context, host string) (string, error) {
//	        return lookupHost(ctx, host)
//	    }))
//	addr, err := resolve.GetOrLoad(ctx, "example.com")
//
// Thread-safety & complexity
//
// All methods on Pool and Namespace are safe for concurrent use. Typical
// operation cost is O(1) expected time: one map access plus a constant
// amount of pointer fixes under the pool lock. Eviction work is O(1) per
// removed entry.
package cache
