package app

import (
	"strings"

	"github.com/charlesng35/pitwall/internal/cache"
)

// RedisClientConfig converts the application cache configuration into the cache package representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:  strings.TrimSpace(c.Redis.Address),
		Username: strings.TrimSpace(c.Redis.Username),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TLS:      c.Redis.TLS,
		Timeout:  c.Redis.Timeout,
	}
}

// NewStore builds the configured cache store: Redis when enabled, the
// in-process memory store otherwise.
func (c CacheConfig) NewStore() (cache.Store, error) {
	if c.Redis.Enabled {
		return cache.NewRedisStore(c.RedisClientConfig())
	}
	return cache.NewMemoryStore(c.Memory.CleanupInterval), nil
}
