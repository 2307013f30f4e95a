package cache

import "go.uber.org/zap"

// Weigher computes the weight of a value in capacity units (typically
// bytes). It must be deterministic for a given value and non-negative;
// a negative result fails the Put with ErrNegativeWeight before any
// state is touched. Weighers are called at most once per Put, outside
// the pool's structural lock, so they should be cheap and pure.
type Weigher[V any] func(v V) int64

// Options configures a Pool. Zero values are safe; sane defaults are
// applied in New():
//   - nil Metrics          => NoopMetrics
//   - nil Logger           => zap.NewNop()
//   - RegistryBuckets <= 0 => auto (rounded up to a power of two)
type Options struct {
	// Capacity is the total weight budget shared by every namespace.
	// Required; New returns ErrInvalidCapacity when it is <= 0.
	Capacity int64

	// DefaultWeigher weighs values in namespaces that do not install
	// their own weigher via WithWeigher. Nil means every entry weighs 1
	// (entry-count semantics).
	DefaultWeigher func(v any) int64

	// RegistryBuckets is the number of lock buckets in the namespace
	// registry, rounded up to a power of two; 0 picks a CPU-based
	// default. This only affects namespace handle resolution: the
	// recency list and the capacity check stay behind a single lock.
	RegistryBuckets int

	// Observability.
	// OnEvict is called for every entry the pool removes on its own:
	// capacity victims (EvictCapacity) and entries displaced by an
	// overwriting Put (EvictReplaced). Explicit Remove does not fire it.
	// Runs under the structural lock; keep callbacks lightweight.
	OnEvict func(namespace string, key, value any, reason EvictReason)

	// OnOversized is called when a single inserted entry's weight
	// exceeds the pool capacity on its own. The insertion still
	// succeeds; see the package documentation for the relaxation.
	OnOversized func(namespace string, key any, weight int64)

	Metrics Metrics

	// Logger reports eviction passes (Debug) and oversized insertions
	// (Warn). Nil => zap.NewNop().
	Logger *zap.Logger
}
