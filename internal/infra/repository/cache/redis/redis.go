package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const operationTimeout = 5 * time.Second

var ErrCacheMiss = errors.New("cache: key not found")

type Option func(*RedisCache)

// WithNamespace prefixes every key with namespace and a colon.
func WithNamespace(namespace string) Option {
	return func(c *RedisCache) {
		if namespace != "" {
			c.keyPrefix = namespace + ":"
		}
	}
}

// RedisCache stores search results as strings with a TTL.
type RedisCache struct {
	redisClient redis.Cmdable
	defaultTTL  time.Duration
	keyPrefix   string
}

func NewCache(redisClient redis.Cmdable, defaultTTL time.Duration, opts ...Option) *RedisCache {
	c := &RedisCache{
		redisClient: redisClient,
		defaultTTL:  defaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *RedisCache) key(key string) string {
	return c.keyPrefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	value, err := c.redisClient.Get(ctx, c.key(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrCacheMiss
	case err != nil:
		return "", err
	}

	return value, nil
}

// Set stores value under key. A zero ttl falls back to the cache default.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	return c.redisClient.Set(ctx, c.key(key), value, ttl).Err()
}
