// Package zaplog provides a cache.Metrics sink that logs pool activity
// via zap. Useful during development or in environments without a
// metrics backend.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/shelbyd/shared-lru/cache"
)

// Sink implements cache.Metrics by logging every signal at Debug level.
type Sink struct {
	logger *zap.Logger
}

// New creates a logging metrics sink.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

// Hit logs a cache hit.
func (s *Sink) Hit(namespace string) {
	s.logger.Debug("hit", zap.String("namespace", namespace))
}

// Miss logs a cache miss.
func (s *Sink) Miss(namespace string) {
	s.logger.Debug("miss", zap.String("namespace", namespace))
}

// Evict logs an entry removed by the pool.
func (s *Sink) Evict(namespace string, reason cache.EvictReason) {
	s.logger.Debug("evict",
		zap.String("namespace", namespace),
		zap.String("reason", reason.String()),
	)
}

// Oversized logs an insertion that exceeded the pool capacity by itself.
func (s *Sink) Oversized(namespace string) {
	s.logger.Debug("oversized entry", zap.String("namespace", namespace))
}

// Size logs the pool's resident entry count and total weight.
func (s *Sink) Size(entries int, weight int64) {
	s.logger.Debug("size",
		zap.Int("entries", entries),
		zap.Int64("weight", weight),
	)
}

// Compile-time check that Sink implements cache.Metrics.
var _ cache.Metrics = (*Sink)(nil)
