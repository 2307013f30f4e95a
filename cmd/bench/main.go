// Command bench runs a synthetic multi-namespace workload against a
// shared pool and exposes optional pprof/Prometheus endpoints.
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shelbyd/shared-lru/cache"
	"github.com/shelbyd/shared-lru/metrics/prom"
	"github.com/shelbyd/shared-lru/weigher"
)

var (
	capacity   int64
	namespaces int
	workers    int
	duration   time.Duration
	readPct    int
	keys       int
	valueSize  int
	zipfS      float64
	zipfV      float64
	seed       int64

	pprofAddr   string
	metricsAddr string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Synthetic workload driver for the shared LRU pool",
	Long: `bench creates one shared pool and several namespaces competing for its
weight budget, then hammers them with a zipf-distributed read/write mix
from many goroutines.

It reports throughput, hit rate and eviction counts, and can expose
Prometheus metrics and pprof while running.`,
	RunE: runBench,
}

func init() {
	f := rootCmd.Flags()
	f.Int64Var(&capacity, "capacity", 64<<20, "pool capacity in bytes")
	f.IntVar(&namespaces, "namespaces", 4, "number of namespaces sharing the pool")
	f.IntVar(&workers, "workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
	f.DurationVar(&duration, "duration", 10*time.Second, "benchmark duration")
	f.IntVar(&readPct, "reads", 80, "read percentage [0..100]")
	f.IntVar(&keys, "keys", 1_000_000, "keyspace size per namespace")
	f.IntVar(&valueSize, "value-size", 512, "value size in bytes")
	f.Float64Var(&zipfS, "zipf-s", 1.1, "Zipf s > 1 (skew)")
	f.Float64Var(&zipfV, "zipf-v", 1.0, "Zipf v")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	f.StringVar(&pprofAddr, "pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
	f.StringVar(&metricsAddr, "http", ":8080", "serve Prometheus metrics at addr")
	f.BoolVarP(&verbose, "verbose", "v", false, "log eviction activity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	// ---- pprof server (on DefaultServeMux) ----
	if pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", pprofAddr)
			log.Println(http.ListenAndServe(pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := prom.New(nil, "sharedlru", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", metricsAddr)
		log.Println(http.ListenAndServe(metricsAddr, nil))
	}()

	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}

	// ---- Build pool and namespaces ----
	pool, err := cache.New(cache.Options{
		Capacity: capacity,
		Metrics:  metrics,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = pool.Close() }()

	handles := make([]*cache.Namespace[string, []byte], namespaces)
	for i := range handles {
		handles[i] = cache.NewNamespace[string, []byte](pool, "ns"+strconv.Itoa(i),
			cache.WithWeigher[string, []byte](weigher.Bytes),
		)
	}

	value := bytes.Repeat([]byte{'x'}, valueSize)

	// ---- Preload until roughly half the budget is resident ----
	preR := rand.New(rand.NewSource(seed))
	for i := 0; i < keys && pool.TotalWeight() < capacity/2; i++ {
		ns := handles[preR.Intn(len(handles))]
		if err := ns.Put("k:"+strconv.Itoa(i), value); err != nil {
			return err
		}
	}

	workersN := workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, hits, misses, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seed + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfS, zipfV, uint64(keys-1))

			keyByZipf := func() string {
				return "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				ns := handles[localR.Intn(len(handles))]
				atomic.AddUint64(&total, 1)
				if int(localR.Int31n(100)) < readPct {
					atomic.AddUint64(&reads, 1)
					if _, ok := ns.Get(keyByZipf()); ok {
						atomic.AddUint64(&hits, 1)
					} else {
						atomic.AddUint64(&misses, 1)
					}
				} else {
					atomic.AddUint64(&writes, 1)
					_ = ns.Put(keyByZipf(), value)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	readsN := atomic.LoadUint64(&reads)
	writesN := atomic.LoadUint64(&writes)
	hitsN := atomic.LoadUint64(&hits)
	missesN := atomic.LoadUint64(&misses)

	hitRate := 0.0
	if readsN > 0 {
		hitRate = float64(hitsN) / float64(readsN) * 100
	}

	st := pool.Stats()
	fmt.Printf("capacity=%s namespaces=%d workers=%d keys=%d value=%dB dur=%v seed=%d\n",
		formatBytes(capacity), namespaces, workersN, keys, valueSize, elapsed, seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), readsN, writesN)
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%\n", hitsN, missesN, hitRate)
	fmt.Printf("evictions=%d  oversized=%d\n", st.Evictions, st.Oversized)
	fmt.Printf("resident: %d entries, %s of %s\n",
		pool.Len(), formatBytes(pool.TotalWeight()), formatBytes(pool.Capacity()))
	for _, ns := range handles {
		fmt.Printf("  %-6s entries=%-8d weight=%s\n", ns.Name(), ns.Len(), formatBytes(ns.Weight()))
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
