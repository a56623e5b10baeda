package cache

import (
	"context"
	"errors"
	"fmt"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
	"skynow-api/pkg/redis"
)

// SnapshotCacheName is the cache whose TTL the redis config sets with WithCacheTTL
const SnapshotCacheName = "skynow_snapshot"

// WeatherCacheGateway stores normalized snapshots per coordinate and unit system
type WeatherCacheGateway interface {
	// Get returns nil without error on a miss
	Get(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.CachedWeather, error)
	Put(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem, weather *model.CachedWeather) error
}

type RedisWeatherCacheGateway struct {
	cache *redis.Cache
}

var _ WeatherCacheGateway = (*RedisWeatherCacheGateway)(nil)

func NewRedisWeatherCacheGateway(client *redis.Client) *RedisWeatherCacheGateway {
	return &RedisWeatherCacheGateway{
		cache: redis.NewCache(client, redis.NewCacheOptions().WithCacheName(SnapshotCacheName)),
	}
}

func (gateway *RedisWeatherCacheGateway) Get(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.CachedWeather, error) {
	var cached model.CachedWeather
	err := gateway.cache.Get(ctx, SnapshotKey(coordinates, units), &cached)
	if errors.Is(err, redis.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot cache: %w", err)
	}
	if cached.Snapshot == nil {
		return nil, nil
	}
	return &cached, nil
}

func (gateway *RedisWeatherCacheGateway) Put(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem, weather *model.CachedWeather) error {
	if err := gateway.cache.Set(ctx, SnapshotKey(coordinates, units), weather); err != nil {
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}
	return nil
}

// SnapshotKey rounds the coordinate to 4 decimals, about 11 m, so nearby requests share an entry.
func SnapshotKey(coordinates entity.Coordinates, units entity.UnitSystem) string {
	return fmt.Sprintf("%.4f:%.4f:%s", coordinates.Lat, coordinates.Lon, units)
}
