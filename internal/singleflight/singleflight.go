// Package singleflight coalesces concurrent calls for the same key so
// that the underlying work runs at most once.
package singleflight

import (
	"context"
	"sync"
)

// Group coalesces concurrent function calls for the same key K: the
// first caller becomes the leader and runs fn, followers wait for the
// shared result. Publishing (v, err) happens-before close(done), so
// reads after <-done observe the final values.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*flight[V]
}

type flight[V any] struct {
	done chan struct{} // closed when v/err are published
	v    V
	err  error
}

// Do runs fn once for the given key. Concurrent calls with the same key
// wait for the shared result. Cancelling ctx in a follower unblocks only
// that follower with ctx.Err(); it does NOT cancel the leader's fn: if
// cancellation of the work is needed, thread ctx into fn.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*flight[V])
	}
	if f, ok := g.m[key]; ok {
		// In-flight call exists: wait for it (respecting ctx).
		done := f.done
		g.mu.Unlock()

		select {
		case <-done:
			return f.v, f.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	// We are the leader for this key.
	f := &flight[V]{done: make(chan struct{})}
	g.m[key] = f
	g.mu.Unlock()

	// Execute fn outside the lock.
	v, err := fn()

	// Publish the result and wake followers.
	f.v, f.err = v, err
	close(f.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return v, err
}
