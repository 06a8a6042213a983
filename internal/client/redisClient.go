package client

import (
	"gamestore/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns nil when no Redis address is configured; the caller
// decides whether running without durable storage is acceptable.
func NewRedisClient(cfg *config.Store) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
