package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client := NewClient(NewRedisConfig().WithHost(server.Host()).WithPort(port))
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

type snapshot struct {
	Lat  float64 `json:"lat"`
	Temp float64 `json:"temp"`
}

func TestCacheRoundTrip(t *testing.T) {
	client, server := newTestClient(t)
	cache := NewCache(client, NewCacheOptions().WithTTL(time.Minute).WithCacheName("weather"))
	client.GetConfig().WithCacheTTL("weather", 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "51.5074:-0.1278:metric", snapshot{Lat: 51.5074, Temp: 12.5}))

	var got snapshot
	require.NoError(t, cache.Get(ctx, "51.5074:-0.1278:metric", &got))
	assert.Equal(t, snapshot{Lat: 51.5074, Temp: 12.5}, got)
	assert.True(t, server.Exists("weather::51.5074:-0.1278:metric"))
	assert.Equal(t, 2*time.Minute, server.TTL("weather::51.5074:-0.1278:metric"))
}

func TestCacheMiss(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewCache(client, nil)

	var got snapshot
	err := cache.Get(context.Background(), "absent", &got)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestClientJSONAndCounters(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	var missing []string
	found, err := client.GetJSON(ctx, "skynow_history:default", &missing)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, client.SetJSON(ctx, "skynow_history:default", []string{"London"}, 0))
	var list []string
	found, err = client.GetJSON(ctx, "skynow_history:default", &list)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"London"}, list)

	first, err := client.Incr(ctx, "seq")
	require.NoError(t, err)
	second, err := client.Incr(ctx, "seq")
	require.NoError(t, err)
	current, err := client.GetInt(ctx, "seq")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	assert.Equal(t, int64(2), current)
}

func TestLockIsExclusive(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	opts := NewLockOptions().WithTTL(time.Minute).WithMaxRetries(0).WithLockNamespace("schedule")

	first := NewLock(client, "refresh", opts)
	second := NewLock(client, "refresh", opts)

	require.NoError(t, first.Lock(ctx))
	assert.ErrorIs(t, second.Lock(ctx), ErrLockNotAcquired)

	held, err := first.IsLocked(ctx)
	require.NoError(t, err)
	assert.True(t, held)

	assert.Error(t, second.Unlock(ctx))
	require.NoError(t, first.Unlock(ctx))
	require.NoError(t, second.Lock(ctx))
}

func TestLockWithFunc(t *testing.T) {
	client, server := newTestClient(t)
	opts := NewLockOptions().WithMaxRetries(0)

	ran := false
	err := LockWithFunc(context.Background(), client, "job", opts, func() error {
		ran = true
		assert.True(t, server.Exists("job"))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, server.Exists("job"))
}

func TestHealthCheck(t *testing.T) {
	client, server := newTestClient(t)
	checker := NewHealthChecker(client)

	up := checker.HealthCheck(context.Background())
	assert.Equal(t, StatusUp, up.Status)
	assert.True(t, checker.IsHealthy())

	server.Close()
	down := checker.HealthCheck(context.Background())
	assert.Equal(t, StatusDown, down.Status)
	assert.NotEmpty(t, down.Details["last_error"])
	assert.False(t, checker.IsHealthy())
}
