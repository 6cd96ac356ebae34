// File: utils/cache.go
package utils

import (
	"bookline/config"
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ShopCacheClient is the Redis client used for cached shop context.
var ShopCacheClient *redis.Client

// InitShopCache initializes the Redis client backing the shop-context cache.
func InitShopCache() {
	ShopCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisShopCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ShopCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Shop Cache): %v", err)
	}
}

// GetShopCacheClient returns the shop-context cache client.
func GetShopCacheClient() *redis.Client {
	if ShopCacheClient == nil {
		InitShopCache()
	}
	return ShopCacheClient
}
