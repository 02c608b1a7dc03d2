package utils

import (
	"context"
	"time"

	"github.com/EternalGerms/trampoaqui-sub001/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient serves general-purpose caching.
	CacheClient *redis.Client
	// AuthCacheClient holds the revoked-token markers the auth middleware
	// checks on every request. Kept on its own DB so flushing the general
	// cache never un-revokes a token.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func mustPing(client *redis.Client, purpose string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Fatal("failed to connect to Redis",
			zap.String("purpose", purpose), zap.Error(err))
	}
}

// InitCache initializes the general-purpose cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	mustPing(CacheClient, "cache")
}

// GetCacheClient returns the general-purpose cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAuthCache initializes the revoked-token cache client.
func InitAuthCache() {
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB)
	mustPing(AuthCacheClient, "auth")
}

// GetAuthCacheClient returns the revoked-token cache client.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
