// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mentorship/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient backs the availability cache.
	CacheClient *redis.Client
	// DeviceCacheClient stores mentee FCM device tokens.
	DeviceCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitDeviceCache initializes the Redis client for device tokens.
func InitDeviceCache() {
	DeviceCacheClient = newRedisClient(config.AppConfig.RedisDeviceDB, "Device Cache")
}

func GetDeviceCacheClient() *redis.Client {
	if DeviceCacheClient == nil {
		InitDeviceCache()
	}
	return DeviceCacheClient
}
