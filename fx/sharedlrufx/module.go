// Package sharedlrufx provides an fx module that wires a shared LRU
// pool into an application and closes it on shutdown.
package sharedlrufx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/shelbyd/shared-lru/cache"
)

// Config sizes the pool.
type Config struct {
	// Capacity is the total weight budget (typically bytes) shared by
	// every namespace created from the pool.
	Capacity int64
}

// Module provides a *cache.Pool built from a Config.
// Requires a Config and a *zap.Logger to be provided; a cache.Metrics
// implementation is picked up when available.
var Module = fx.Module("sharedlru",
	fx.Provide(newPool),
)

// Params holds dependencies for creating the pool.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Metrics   cache.Metrics `optional:"true"`
	Lifecycle fx.Lifecycle
}

func newPool(p Params) (*cache.Pool, error) {
	pool, err := cache.New(cache.Options{
		Capacity: p.Config.Capacity,
		Metrics:  p.Metrics,
		Logger:   p.Logger.Named("sharedlru"),
	})
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return pool.Close()
		},
	})

	return pool, nil
}
