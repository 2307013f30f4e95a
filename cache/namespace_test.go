package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// Handles created twice with the same id operate on the same table.
func TestNamespace_IdempotentConstruction(t *testing.T) {
	t.Parallel()

	p, err := New(Options{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	first := NewNamespace[string, int](p, "shared")
	second := NewNamespace[string, int](p, "shared")

	if err := first.Put("k", 7); err != nil {
		t.Fatal(err)
	}
	if v, ok := second.Get("k"); !ok || v != 7 {
		t.Fatalf("second handle Get = %v ok=%v, want 7", v, ok)
	}
	if first.Len() != 1 || second.Len() != 1 {
		t.Fatalf("Len mismatch: %d vs %d", first.Len(), second.Len())
	}
}

// The per-namespace weigher overrides the pool default, and the pool
// default applies where no weigher is installed.
func TestNamespace_WeigherPrecedence(t *testing.T) {
	t.Parallel()

	p, err := New(Options{
		Capacity:       1000,
		DefaultWeigher: func(any) int64 { return 10 },
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	plain := NewNamespace[string, string](p, "plain")
	sized := NewNamespace[string, string](p, "sized",
		WithWeigher[string, string](func(v string) int64 { return int64(len(v)) }),
	)

	_ = plain.Put("k", "whatever")
	_ = sized.Put("k", "abc")

	if got := plain.Weight(); got != 10 {
		t.Fatalf("default-weighed namespace Weight = %d, want 10", got)
	}
	if got := sized.Weight(); got != 3 {
		t.Fatalf("custom-weighed namespace Weight = %d, want 3", got)
	}
	if got := p.TotalWeight(); got != 13 {
		t.Fatalf("TotalWeight = %d, want 13", got)
	}
}

// Using one id with two different value types must not panic; the
// wrong-typed handle just misses.
func TestNamespace_TypeMismatchIsMiss(t *testing.T) {
	t.Parallel()

	p, err := New(Options{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	strings := NewNamespace[string, string](p, "mixed")
	ints := NewNamespace[string, int](p, "mixed")

	_ = strings.Put("k", "v")
	if _, ok := ints.Get("k"); ok {
		t.Fatal("Get through a differently typed handle must miss")
	}
}

func TestNamespace_GetOrLoad_NoLoader(t *testing.T) {
	t.Parallel()

	p, err := New(Options{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	a := NewNamespace[string, string](p, "A")
	if _, err := a.GetOrLoad(context.Background(), "k"); !errors.Is(err, ErrNoLoader) {
		t.Fatalf("GetOrLoad error = %v, want ErrNoLoader", err)
	}
}

// A failing loader caches nothing and propagates its error.
func TestNamespace_GetOrLoad_LoaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	p, err := New(Options{Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	a := NewNamespace[string, string](p, "A",
		WithLoader[string, string](func(context.Context, string) (string, error) {
			return "", boom
		}),
	)

	if _, err := a.GetOrLoad(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("GetOrLoad error = %v, want boom", err)
	}
	if a.Contains("k") {
		t.Fatal("failed load must not cache a value")
	}
}

// Concurrent GetOrLoad calls for the same key trigger the loader at most
// once; subsequent calls are cache hits.
func TestNamespace_GetOrLoad_Singleflight(t *testing.T) {
	var calls int64

	p, err := New(Options{Capacity: 1024})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = p.Close() })

	a := NewNamespace[string, string](p, "A",
		WithLoader[string, string](func(_ context.Context, k string) (string, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(5 * time.Millisecond) // simulate I/O
			return "v:" + k, nil
		}),
	)

	const N = 64
	var g errgroup.Group
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < N; i++ {
		g.Go(func() error {
			v, err := a.GetOrLoad(ctx, "k")
			if err != nil {
				return err
			}
			if v != "v:k" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("loader must run exactly once, got %d", got)
	}

	if v, err := a.GetOrLoad(context.Background(), "k"); err != nil || v != "v:k" {
		t.Fatalf("second GetOrLoad failed: v=%q err=%v", v, err)
	}
}
