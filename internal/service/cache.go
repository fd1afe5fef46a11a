package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/geoexplorer/backend/pkg/logger"
	"github.com/geoexplorer/backend/pkg/redis"
	"go.uber.org/zap"
)

// CacheService is a JSON read-through cache over the redis client. All
// methods degrade to misses/no-ops when the cache is unavailable; a cache
// failure never fails the request.
type CacheService struct {
	client redis.Client
}

func NewCacheService(client redis.Client) *CacheService {
	return &CacheService{client: client}
}

// GetJSON loads a cached value into dest; returns false on miss.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest any) bool {
	raw, found, err := s.client.Get(ctx, key)
	if err != nil {
		logger.GetLogger().Warn("Cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.GetLogger().Warn("Cache entry corrupted, dropping",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = s.client.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON stores a value under key with a TTL.
func (s *CacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.GetLogger().Warn("Cache marshal failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if err := s.client.Set(ctx, key, string(raw), ttl); err != nil {
		logger.GetLogger().Warn("Cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// Invalidate drops the given keys.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) {
	if err := s.client.Delete(ctx, keys...); err != nil {
		logger.GetLogger().Warn("Cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
	}
}
