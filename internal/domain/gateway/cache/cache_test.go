package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
	"skynow-api/pkg/redis"
)

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client := redis.NewClient(redis.NewRedisConfig().
		WithHost(server.Host()).
		WithPort(port).
		WithCacheTTL(SnapshotCacheName, 10*time.Minute))
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func TestSnapshotKeyRoundsCoordinates(t *testing.T) {
	a := SnapshotKey(entity.Coordinates{Lat: 51.507412, Lon: -0.127758}, entity.Metric)
	b := SnapshotKey(entity.Coordinates{Lat: 51.507378, Lon: -0.127801}, entity.Metric)

	assert.Equal(t, "51.5074:-0.1278:metric", a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, SnapshotKey(entity.Coordinates{Lat: 51.507412, Lon: -0.127758}, entity.Imperial))
}

func TestRedisWeatherCacheRoundTrip(t *testing.T) {
	client, server := newRedis(t)
	gateway := NewRedisWeatherCacheGateway(client)
	ctx := context.Background()
	london := entity.Coordinates{Lat: 51.5074, Lon: -0.1278}

	cached, err := gateway.Get(ctx, london, entity.Metric)
	require.NoError(t, err)
	assert.Nil(t, cached)

	weather := &model.CachedWeather{
		Location: "London, GB",
		Source:   "onecall",
		Snapshot: &entity.WeatherSnapshot{Lat: 51.5074, Lon: -0.1278, Timezone: "Europe/London", Units: entity.Metric},
	}
	require.NoError(t, gateway.Put(ctx, london, entity.Metric, weather))

	cached, err = gateway.Get(ctx, london, entity.Metric)
	require.NoError(t, err)
	assert.Equal(t, weather, cached)

	assert.Equal(t, 10*time.Minute, server.TTL(SnapshotCacheName+"::"+SnapshotKey(london, entity.Metric)))

	cached, err = gateway.Get(ctx, london, entity.Imperial)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestRedisWeatherCacheReportsFailures(t *testing.T) {
	client, server := newRedis(t)
	gateway := NewRedisWeatherCacheGateway(client)
	server.Close()

	_, err := gateway.Get(context.Background(), entity.Coordinates{}, entity.Metric)
	assert.Error(t, err)
}

func TestRedisLoadTracker(t *testing.T) {
	client, _ := newRedis(t)
	testLoadTracker(t, NewRedisLoadTracker(client))
}

func TestRedisLoadTrackerExpiresIdleClients(t *testing.T) {
	client, server := newRedis(t)
	tracker := NewRedisLoadTracker(client)
	ctx := context.Background()

	_, err := tracker.Next(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, LoadSequenceTTL, server.TTL(loadSequenceKey+"alice"))

	server.FastForward(LoadSequenceTTL + time.Second)
	assert.False(t, server.Exists(loadSequenceKey+"alice"))

	sequence, err := tracker.Next(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sequence)
}

func TestMemoryLoadTracker(t *testing.T) {
	testLoadTracker(t, NewMemoryLoadTracker())
}

func testLoadTracker(t *testing.T, tracker LoadTracker) {
	ctx := context.Background()

	first, err := tracker.Next(ctx, "alice")
	require.NoError(t, err)
	second, err := tracker.Next(ctx, "alice")
	require.NoError(t, err)
	other, err := tracker.Next(ctx, "bob")
	require.NoError(t, err)

	assert.Greater(t, second, first)
	assert.Equal(t, int64(1), other)

	stale, err := tracker.IsStale(ctx, "alice", first)
	require.NoError(t, err)
	assert.True(t, stale)

	stale, err = tracker.IsStale(ctx, "alice", second)
	require.NoError(t, err)
	assert.False(t, stale)

	stale, err = tracker.IsStale(ctx, "bob", other)
	require.NoError(t, err)
	assert.False(t, stale)
}
