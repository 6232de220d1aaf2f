package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/volunteerhub/internal/domain"
	"github.com/spec-kit/volunteerhub/internal/events"
	"github.com/spec-kit/volunteerhub/internal/repository"
)

// statsCache is the single-slot TTL cache backing the HTTP stats endpoint.
// It is shared by all callers and refreshed only on expiry or a cold read;
// mutations do not invalidate it. Websocket subscribers always get fresh
// counts, so the two views can transiently disagree.
type statsCache struct {
	mu         sync.Mutex
	value      domain.Stats
	computedAt time.Time
	ttl        time.Duration
	now        func() time.Time
}

func newStatsCache(ttl time.Duration) *statsCache {
	return &statsCache{ttl: ttl, now: time.Now}
}

// get returns the cached value when it is still fresh.
func (c *statsCache) get() (domain.Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.computedAt.IsZero() || c.now().Sub(c.computedAt) >= c.ttl {
		return domain.Stats{}, false
	}
	return c.value, true
}

// set stores a freshly computed value. Two concurrent misses may both
// recompute and overwrite; the overwrite is idempotent.
func (c *statsCache) set(value domain.Stats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.computedAt = c.now()
}

// StatsService serves the aggregate platform counters.
type StatsService struct {
	stats  repository.StatsRepository
	cache  *statsCache
	logger *zap.Logger
}

// NewStatsService builds the service with the given cache lifetime.
func NewStatsService(stats repository.StatsRepository, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{
		stats:  stats,
		cache:  newStatsCache(cacheTTL),
		logger: logger,
	}
}

// Cached returns the stats, recomputing only when the cache slot expired.
func (s *StatsService) Cached(ctx context.Context) (domain.Stats, error) {
	if value, ok := s.cache.get(); ok {
		return value, nil
	}
	value, err := s.stats.Compute(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	s.cache.set(value)
	return value, nil
}

// Fresh always recomputes; used for broadcast payloads.
func (s *StatsService) Fresh(ctx context.Context) (domain.Stats, error) {
	return s.stats.Compute(ctx)
}

// publishStatsUpdate broadcasts a fresh stats snapshot. Failures are
// logged, never surfaced: the mutation that triggered the broadcast has
// already succeeded.
func publishStatsUpdate(ctx context.Context, dispatcher events.Dispatcher, stats repository.StatsRepository, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	value, err := stats.Compute(ctx)
	if err != nil {
		logger.Warn("compute stats for broadcast", zap.Error(err))
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{Type: events.EventStatsUpdate, Stats: &value})
}
