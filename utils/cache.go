package utils

import (
	"context"
	"time"

	"slotwise/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionCacheClient is the redis client backing conversation transcripts.
// It stays nil when REDIS_ADDR is not configured or redis is unreachable;
// callers fall back to the in-memory session store in that case.
var SessionCacheClient *redis.Client

// InitSessionCache connects the session cache client. Unlike the rest of
// the wiring this is best-effort: the service must come up without redis.
func InitSessionCache() {
	if config.AppConfig.RedisAddr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis (sessions) unreachable, using in-memory session store",
			zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		return
	}
	SessionCacheClient = client
}

// GetSessionCacheClient returns the session cache client, or nil when
// running without redis.
func GetSessionCacheClient() *redis.Client {
	return SessionCacheClient
}
