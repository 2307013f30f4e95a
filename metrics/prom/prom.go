// Package prom exports shared pool metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shelbyd/shared-lru/cache"
)

// Adapter implements cache.Metrics and exports Prometheus counters and
// gauges labeled by namespace. Safe for concurrent use; all Prometheus
// metric types are goroutine-safe.
type Adapter struct {
	hits       *prometheus.CounterVec
	misses     *prometheus.CounterVec
	evicts     *prometheus.CounterVec
	oversized  *prometheus.CounterVec
	sizeEnt    prometheus.Gauge
	sizeWeight prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits by namespace",
			ConstLabels: constLabels,
		}, []string{"namespace"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses by namespace",
			ConstLabels: constLabels,
		}, []string{"namespace"}),
		evicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "evictions_total",
			Help:        "Entries removed by the pool, by namespace and reason",
			ConstLabels: constLabels,
		}, []string{"namespace", "reason"}),
		oversized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "oversized_entries_total",
			Help:        "Insertions whose single entry exceeded the pool capacity",
			ConstLabels: constLabels,
		}, []string{"namespace"}),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries across all namespaces",
			ConstLabels: constLabels,
		}),
		sizeWeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_weight",
			Help:        "Total resident weight across all namespaces",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.evicts, a.oversized, a.sizeEnt, a.sizeWeight)
	return a
}

// Hit increments the hit counter for the namespace.
func (a *Adapter) Hit(namespace string) { a.hits.WithLabelValues(namespace).Inc() }

// Miss increments the miss counter for the namespace.
func (a *Adapter) Miss(namespace string) { a.misses.WithLabelValues(namespace).Inc() }

// Evict increments the eviction counter with namespace and reason labels.
func (a *Adapter) Evict(namespace string, r cache.EvictReason) {
	a.evicts.WithLabelValues(namespace, r.String()).Inc()
}

// Oversized increments the oversized-entry counter for the namespace.
func (a *Adapter) Oversized(namespace string) {
	a.oversized.WithLabelValues(namespace).Inc()
}

// Size updates gauges for the number of entries and total weight.
func (a *Adapter) Size(entries int, weight int64) {
	a.sizeEnt.Set(float64(entries))
	a.sizeWeight.Set(float64(weight))
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
