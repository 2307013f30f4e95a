package cache

import (
	"context"

	"github.com/shelbyd/shared-lru/internal/singleflight"
)

// Loader fetches a value on cache miss, for use with GetOrLoad.
type Loader[K comparable, V any] func(ctx context.Context, k K) (V, error)

// NamespaceOption configures a Namespace handle.
type NamespaceOption[K comparable, V any] func(*Namespace[K, V])

// WithWeigher installs a typed weigher for this namespace, overriding
// the pool's DefaultWeigher.
func WithWeigher[K comparable, V any](w Weigher[V]) NamespaceOption[K, V] {
	return func(n *Namespace[K, V]) { n.weigher = w }
}

// WithLoader installs the loader used by GetOrLoad.
func WithLoader[K comparable, V any](l Loader[K, V]) NamespaceOption[K, V] {
	return func(n *Namespace[K, V]) { n.loader = l }
}

// Namespace is a typed handle bound to one namespace id. It owns no
// entries: every operation routes to the shared pool, which may evict
// entries of other namespaces to make room. Handles constructed with the
// same id share the same underlying table; construct a handle once and
// share it (GetOrLoad coalescing is per handle).
type Namespace[K comparable, V any] struct {
	pool    *Pool
	state   *namespace
	weigher Weigher[V]
	loader  Loader[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// NewNamespace returns a handle for the namespace with the given name,
// creating its table on first use. Idempotent: calling it twice with the
// same name yields handles over the same entries.
func NewNamespace[K comparable, V any](p *Pool, name string, opts ...NamespaceOption[K, V]) *Namespace[K, V] {
	n := &Namespace[K, V]{
		pool:  p,
		state: p.namespaceState(name),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Name returns the namespace id.
func (n *Namespace[K, V]) Name() string { return n.state.name }

// Put inserts or overwrites k→v. The weight comes from the namespace
// weigher, the pool's DefaultWeigher, or 1, in that order, and is
// computed before the pool lock is taken. Insertion may evict least
// recently used entries from any namespace sharing the pool.
func (n *Namespace[K, V]) Put(k K, v V) error {
	return n.pool.put(n.state, k, v, n.weightOf(v))
}

// PutWeighted inserts or overwrites k→v with an explicit weight,
// bypassing the weigher.
func (n *Namespace[K, V]) PutWeighted(k K, v V, weight int64) error {
	return n.pool.put(n.state, k, v, weight)
}

// Get returns the value for k and promotes the entry to most recently
// used across the whole pool.
func (n *Namespace[K, V]) Get(k K) (V, bool) {
	raw, ok := n.pool.get(n.state, k)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		// Same id used with a different value type; treat as a miss.
		var zero V
		return zero, false
	}
	return v, true
}

// GetOrLoad returns the value for k, loading it via the namespace
// Loader on miss. Concurrent loads for the same key through this handle
// are coalesced (singleflight). Returns ErrNoLoader if no Loader was
// installed.
func (n *Namespace[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := n.Get(k); ok {
		return v, nil
	}
	if n.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return n.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := n.Get(k); ok {
			return v, nil
		}
		v, err := n.loader(ctx, k)
		if err != nil {
			var zero V
			return zero, err
		}
		if err := n.Put(k, v); err != nil {
			return v, err
		}
		return v, nil
	})
}

// Remove deletes k if present and returns the removed value. Removing
// an absent key returns the zero value and false.
func (n *Namespace[K, V]) Remove(k K) (V, bool) {
	raw, ok := n.pool.remove(n.state, k)
	if !ok {
		var zero V
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		var zero V
		return zero, false
	}
	return v, true
}

// Contains reports whether k is resident without affecting recency.
func (n *Namespace[K, V]) Contains(k K) bool {
	return n.pool.contains(n.state, k)
}

// Len returns the number of entries resident in this namespace.
func (n *Namespace[K, V]) Len() int { return n.pool.lenOf(n.state) }

// Weight returns the summed weight of this namespace's entries,
// maintained incrementally (O(1)).
func (n *Namespace[K, V]) Weight() int64 { return n.pool.weightOf(n.state) }

// Stats returns this namespace's operation counters.
func (n *Namespace[K, V]) Stats() Stats { return n.state.stats() }

func (n *Namespace[K, V]) weightOf(v V) int64 {
	if n.weigher != nil {
		return n.weigher(v)
	}
	if dw := n.pool.opt.DefaultWeigher; dw != nil {
		return dw(v)
	}
	return 1
}
