package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cache keys for the catalog listings.
const (
	cacheKeySubjects = "materias:list"
	cacheKeyGroups   = "grupos:list"
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService wraps the read-through catalog cache. It is a best-effort
// layer: every failure degrades to a store read, never to a request error.
type CacheService struct {
	store   cacheStore
	ttl     time.Duration
	enabled bool
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheService constructs a CacheService. A nil store or enabled=false
// yields a disabled cache whose methods are safe no-ops.
func NewCacheService(store cacheStore, enabled bool, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{store: store, ttl: ttl, enabled: enabled && store != nil, metrics: metrics, logger: logger}
}

// Enabled reports whether lookups should be attempted at all.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled
}

// Get loads a cached payload into dest. Misses and backend failures both
// return an error so callers fall through to the store.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	err := s.store.Get(ctx, key, dest)
	s.metrics.RecordCacheLookup(err == nil, time.Since(start))
	return err
}

// Set stores a payload under the configured TTL. Failures are logged only.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the given keys after a catalog mutation.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if !s.Enabled() {
		return
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
