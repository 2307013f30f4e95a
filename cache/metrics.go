package cache

// EvictReason explains why the pool removed an entry.
type EvictReason int

const (
	// EvictCapacity: removed by the eviction loop to restore the shared
	// capacity invariant. The victim may belong to any namespace.
	EvictCapacity EvictReason = iota
	// EvictReplaced: displaced by an overwriting Put for the same key.
	EvictReplaced
)

// String returns a stable label value for the reason.
func (r EvictReason) String() string {
	switch r {
	case EvictReplaced:
		return "replaced"
	default:
		return "capacity"
	}
}

// Metrics exposes pool-level observability hooks, labeled by namespace.
// Implementations must be safe for concurrent use. A NoopMetrics
// implementation is provided and used by default.
type Metrics interface {
	Hit(namespace string)
	Miss(namespace string)
	Evict(namespace string, reason EvictReason)
	Oversized(namespace string)
	Size(entries int, weight int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when no
// observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit(string)                {}
func (NoopMetrics) Miss(string)               {}
func (NoopMetrics) Evict(string, EvictReason) {}
func (NoopMetrics) Oversized(string)          {}
func (NoopMetrics) Size(int, int64)           {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
