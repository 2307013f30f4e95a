package cache

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/shelbyd/shared-lru/internal/util"
)

// Sentinel errors for well-defined failure modes.
var (
	// ErrInvalidCapacity is returned by New when Options.Capacity <= 0.
	ErrInvalidCapacity = errors.New("sharedlru: capacity must be > 0")

	// ErrNegativeWeight rejects a Put whose weigher returned a negative
	// weight. The pool is left untouched.
	ErrNegativeWeight = errors.New("sharedlru: negative entry weight")

	// ErrClosed is returned by write operations on a closed pool.
	ErrClosed = errors.New("sharedlru: pool is closed")

	// ErrNoLoader is returned by GetOrLoad when the namespace has no
	// Loader installed.
	ErrNoLoader = errors.New("sharedlru: no Loader provided")
)

// Stats is a point-in-time snapshot of operation counters, either for
// one namespace or for the whole pool.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64 // capacity victims only; overwrites and Remove are not counted
	Oversized uint64
}

// Pool is the shared eviction engine: one recency order and one weight
// budget spanning every namespace created from it. Pools are explicitly
// constructed and passed around (never a process-wide singleton), so
// independent pools can coexist in tests and multi-tenant processes.
// All methods are safe for concurrent use by multiple goroutines.
type Pool struct {
	// mu guards the recency list, every namespace table, and all weight
	// accounting. Eviction must atomically touch the victim's table and
	// the shared list, so the list and the capacity check are a single
	// serialization point.
	mu    sync.RWMutex
	list  recencyList
	total int64

	capacity int64
	registry []registryBucket
	closed   atomic.Bool

	opt Options

	// ---- hot counters (separate cache lines to avoid false sharing) ----
	_         util.CacheLinePad
	hits      util.PaddedAtomicUint64
	misses    util.PaddedAtomicUint64
	evicts    util.PaddedAtomicUint64
	oversized util.PaddedAtomicUint64
}

// registryBucket is one lock bucket of the namespace registry.
// Read-mostly: a namespace is created once and lives for the process.
type registryBucket struct {
	mu sync.RWMutex
	m  map[string]*namespace
}

// New constructs a Pool with the provided Options.
// Defaults:
//   - nil Metrics          -> NoopMetrics
//   - nil Logger           -> zap.NewNop()
//   - RegistryBuckets <= 0 -> auto, rounded up to the next power of two
func New(opt Options) (*Pool, error) {
	if opt.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}

	nb := opt.RegistryBuckets
	if nb <= 0 {
		nb = util.ReasonableBucketCount()
	} else {
		nb = int(util.NextPow2(uint64(nb)))
	}
	buckets := make([]registryBucket, nb)
	for i := range buckets {
		buckets[i].m = make(map[string]*namespace)
	}

	return &Pool{
		capacity: opt.Capacity,
		registry: buckets,
		opt:      opt,
	}, nil
}

// Capacity returns the configured total weight budget.
func (p *Pool) Capacity() int64 { return p.capacity }

// TotalWeight returns the summed weight of all live entries across all
// namespaces. It exceeds Capacity only while a single oversized entry
// is resident.
func (p *Pool) TotalWeight() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Len returns the number of resident entries across all namespaces.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.list.len
}

// Stats returns pool-wide operation counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Evictions: p.evicts.Load(),
		Oversized: p.oversized.Load(),
	}
}

// Close marks the pool closed. Subsequent writes return ErrClosed and
// reads report a miss; resident entries are left for the GC.
func (p *Pool) Close() error {
	p.closed.Store(true)
	return nil
}

// namespaceState resolves (or lazily creates) the state for a namespace
// id. Idempotent: the same id always yields the same state, so handles
// constructed twice share one table. Namespaces are never destroyed.
func (p *Pool) namespaceState(name string) *namespace {
	b := &p.registry[util.BucketIndex(util.Fnv64a(name), len(p.registry))]

	b.mu.RLock()
	ns, ok := b.m[name]
	b.mu.RUnlock()
	if ok {
		return ns
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	// Double-check after acquiring the write lock.
	if ns, ok = b.m[name]; ok {
		return ns
	}
	ns = newNamespace(name)
	b.m[name] = ns
	return ns
}

// -------------------- engine operations --------------------

// get returns the value for key and promotes the entry to MRU across
// the whole pool.
func (p *Pool) get(ns *namespace, key any) (any, bool) {
	if p.closed.Load() {
		return nil, false
	}

	p.mu.Lock()
	n, ok := ns.table[key]
	if !ok {
		p.mu.Unlock()
		ns.misses.Add(1)
		p.misses.Add(1)
		p.opt.Metrics.Miss(ns.name)
		return nil, false
	}
	p.list.moveToFront(n)
	v := n.value
	p.mu.Unlock()

	ns.hits.Add(1)
	p.hits.Add(1)
	p.opt.Metrics.Hit(ns.name)
	return v, true
}

// put inserts or overwrites an entry, then evicts tail entries until the
// capacity invariant holds again. weight has already been computed by
// the caller (outside the lock).
func (p *Pool) put(ns *namespace, key, value any, weight int64) error {
	if weight < 0 {
		return ErrNegativeWeight
	}
	if p.closed.Load() {
		return ErrClosed
	}

	p.mu.Lock()

	// Logical overwrite: the previous entry is removed, never mutated.
	// Externally held references to its value become stale.
	if old, ok := ns.table[key]; ok {
		p.unlinkLocked(old)
		p.notifyLocked(old, EvictReplaced)
	}

	n := &entry{ns: ns, key: key, value: value, weight: weight}
	ns.table[key] = n
	p.list.pushFront(n)
	ns.weight += weight
	p.total += weight

	evicted, freed := p.evictLocked(n)

	// Still over budget means n alone exceeds the capacity: the loop
	// has already drained everything else.
	over := p.total > p.capacity
	entries, totalW := p.list.len, p.total
	p.mu.Unlock()

	if evicted > 0 {
		p.opt.Logger.Debug("evicted to capacity",
			zap.Int("evicted", evicted),
			zap.Int64("freedWeight", freed),
			zap.Int64("totalWeight", totalW),
			zap.Int64("capacity", p.capacity),
		)
	}
	if over {
		ns.oversized.Add(1)
		p.oversized.Add(1)
		p.opt.Metrics.Oversized(ns.name)
		if cb := p.opt.OnOversized; cb != nil {
			cb(ns.name, key, weight)
		}
		p.opt.Logger.Warn("entry weight exceeds pool capacity",
			zap.String("namespace", ns.name),
			zap.Int64("weight", weight),
			zap.Int64("capacity", p.capacity),
		)
	}
	p.opt.Metrics.Size(entries, totalW)
	return nil
}

// remove deletes an entry by key and returns its value. Removing an
// absent key is not an error and changes nothing.
func (p *Pool) remove(ns *namespace, key any) (any, bool) {
	if p.closed.Load() {
		return nil, false
	}

	p.mu.Lock()
	n, ok := ns.table[key]
	if !ok {
		p.mu.Unlock()
		return nil, false
	}
	p.unlinkLocked(n)
	entries, totalW := p.list.len, p.total
	p.mu.Unlock()

	// Explicit removal is not an eviction: no OnEvict, no evict counters.
	p.opt.Metrics.Size(entries, totalW)
	return n.value, true
}

// contains reports residency without touching recency (a peek).
func (p *Pool) contains(ns *namespace, key any) bool {
	if p.closed.Load() {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := ns.table[key]
	return ok
}

// weightOf returns the namespace's running weight counter in O(1).
func (p *Pool) weightOf(ns *namespace) int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ns.weight
}

// lenOf returns the number of entries resident in the namespace.
func (p *Pool) lenOf(ns *namespace) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(ns.table)
}

// -------------------- internals (mu held) --------------------

// unlinkLocked detaches n from the list, its table, and all weight
// accounting. Counters and callbacks are the caller's business.
func (p *Pool) unlinkLocked(n *entry) {
	p.list.remove(n)
	delete(n.ns.table, n.key)
	n.ns.weight -= n.weight
	p.total -= n.weight
}

// notifyLocked reports an entry removed by the pool itself. Capacity
// victims count as evictions; replaced entries do not.
func (p *Pool) notifyLocked(n *entry, reason EvictReason) {
	if reason == EvictCapacity {
		n.ns.evicts.Add(1)
		p.evicts.Add(1)
	}
	p.opt.Metrics.Evict(n.ns.name, reason)
	if cb := p.opt.OnEvict; cb != nil {
		// Callbacks run under the structural lock so notification order
		// matches tail-pop order; keep them lightweight.
		cb(n.ns.name, n.key, n.value, reason)
	}
}

// evictLocked pops global tail entries until the total weight fits the
// capacity, regardless of which namespace owns them. fresh is the entry
// inserted by the current operation and is never chosen as a victim, so
// a single oversized entry survives its own insertion (and sits at the
// tail for the next one).
func (p *Pool) evictLocked(fresh *entry) (evicted int, freed int64) {
	for p.total > p.capacity {
		tail := p.list.back()
		if tail == nil || tail == fresh {
			break
		}
		p.unlinkLocked(tail)
		evicted++
		freed += tail.weight
		p.notifyLocked(tail, EvictCapacity)
	}
	return evicted, freed
}
