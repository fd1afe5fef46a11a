package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds Redis connection configuration
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
}

// Client is the cache/rate-limit surface the application depends on. When
// Redis is disabled the returned client is a no-op: every Get is a miss and
// every Allow passes.
type Client interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Allow implements a fixed-window counter: at most limit calls per key
	// per window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
	IsEnabled() bool
	Close() error
}

type redisClient struct {
	rdb *redis.Client
	log *zap.Logger
}

type noopClient struct{}

// NewClient creates a Redis-backed client, or a no-op client when disabled.
func NewClient(cfg Config, log *zap.Logger) Client {
	if !cfg.Enabled {
		log.Info("Redis disabled, using no-op client")
		return &noopClient{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable at startup, continuing anyway",
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			zap.Error(err),
		)
	} else {
		log.Info("Connected to Redis",
			zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			zap.Int("database", cfg.DB),
		)
	}

	return &redisClient{rdb: rdb, log: log}
}

// NewClientFromRedis wraps an existing go-redis client. Used by tests with
// miniredis.
func NewClientFromRedis(rdb *redis.Client, log *zap.Logger) Client {
	return &redisClient{rdb: rdb, log: log}
}

func (c *redisClient) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

func (c *redisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *redisClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *redisClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr %q: %w", key, err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("redis expire %q: %w", key, err)
		}
	}
	return count <= int64(limit), nil
}

func (c *redisClient) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *redisClient) IsEnabled() bool { return true }

func (c *redisClient) Close() error { return c.rdb.Close() }

func (n *noopClient) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (n *noopClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (n *noopClient) Delete(ctx context.Context, keys ...string) error { return nil }

func (n *noopClient) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopClient) Ping(ctx context.Context) error { return nil }

func (n *noopClient) IsEnabled() bool { return false }

func (n *noopClient) Close() error { return nil }
