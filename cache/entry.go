package cache

import "github.com/shelbyd/shared-lru/internal/util"

// entry is an intrusive doubly linked list element owned by the pool.
// It carries a namespace back-pointer so the eviction loop can reach the
// victim's table from the global recency list in O(1).
type entry struct {
	ns    *namespace
	key   any
	value any

	// weight is computed once at insertion and never mutated;
	// an overwriting Put replaces the entry instead.
	weight int64

	// Intrusive list links: head is MRU, tail is LRU.
	prev *entry
	next *entry
}

// namespace is the pool-owned state for one logical cache: its key table
// and a running weight counter, plus hot operation counters. The table
// and weight are guarded by the pool's structural lock; a namespace is
// created lazily on first use and lives for the process lifetime (an
// empty table is cheap to keep).
type namespace struct {
	name string

	// ---- guarded by Pool.mu ----
	table  map[any]*entry
	weight int64

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_         util.CacheLinePad
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evicts    util.PaddedAtomicUint64
	oversized util.PaddedAtomicUint64
}

func newNamespace(name string) *namespace {
	return &namespace{name: name, table: make(map[any]*entry)}
}

func (ns *namespace) stats() Stats {
	return Stats{
		Hits:      ns.hits.Load(),
		Misses:    ns.misses.Load(),
		Evictions: ns.evicts.Load(),
		Oversized: ns.oversized.Load(),
	}
}
