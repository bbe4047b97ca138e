// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"groupcal/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the Redis client backing the free slot cache.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. The client is kept even when the
// first ping fails; go-redis reconnects and cache reads degrade to misses.
func InitCache() error {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis (Cache): %w", err)
	}
	return nil
}

// GetCacheClient returns the cache client, creating it on first use.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		if err := InitCache(); err != nil {
			GetLogger().Sugar().Warnf("utils.GetCacheClient: %v", err)
		}
	}
	return CacheClient
}
