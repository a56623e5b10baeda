package cache

import (
	"context"
	"fmt"
	"time"

	"skynow-api/internal/domain/gateway/cache"
	"skynow-api/pkg/redis"
	"skynow-api/pkg/resource"
)

// NewRedisClient connects to app.redis.* with the snapshot cache TTL from app.cache.snapshot-ttl
func NewRedisClient(ctx context.Context) (*redis.Client, error) {
	config := redis.NewRedisConfig().
		WithHost(resource.GetString("app.redis.host")).
		WithPort(resource.GetIntOrDefault("app.redis.port", 6379)).
		WithPassword(resource.GetString("app.redis.password")).
		WithDatabase(resource.GetInt("app.redis.database")).
		WithCacheTTL(cache.SnapshotCacheName, resource.GetDurationOrDefault("app.cache.snapshot-ttl", 10*time.Minute))

	client := redis.NewClient(config)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis at %s:%d: %w", config.Host, config.Port, err)
	}
	return client, nil
}
