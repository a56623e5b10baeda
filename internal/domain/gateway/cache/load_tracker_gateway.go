package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skynow-api/pkg/redis"
)

const loadSequenceKey = "skynow_load_seq:"

// LoadSequenceTTL is how long an idle client's sequence is kept. Each load pushes it back.
const LoadSequenceTTL = time.Hour

// LoadTracker hands out increasing sequence numbers per client so a finished load can tell
// whether a newer one started after it.
type LoadTracker interface {
	Next(ctx context.Context, clientID string) (int64, error)
	IsStale(ctx context.Context, clientID string, sequence int64) (bool, error)
}

type RedisLoadTracker struct {
	client *redis.Client
}

var _ LoadTracker = (*RedisLoadTracker)(nil)

func NewRedisLoadTracker(client *redis.Client) *RedisLoadTracker {
	return &RedisLoadTracker{client: client}
}

func (tracker *RedisLoadTracker) Next(ctx context.Context, clientID string) (int64, error) {
	key := loadSequenceKey + clientID
	sequence, err := tracker.client.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment load sequence: %w", err)
	}
	if err := tracker.client.Expire(ctx, key, LoadSequenceTTL); err != nil {
		return 0, fmt.Errorf("failed to expire load sequence: %w", err)
	}
	return sequence, nil
}

func (tracker *RedisLoadTracker) IsStale(ctx context.Context, clientID string, sequence int64) (bool, error) {
	latest, err := tracker.client.GetInt(ctx, loadSequenceKey+clientID)
	if err != nil {
		return false, fmt.Errorf("failed to read load sequence: %w", err)
	}
	return latest > sequence, nil
}

type MemoryLoadTracker struct {
	mutex     sync.Mutex
	sequences map[string]int64
}

var _ LoadTracker = (*MemoryLoadTracker)(nil)

func NewMemoryLoadTracker() *MemoryLoadTracker {
	return &MemoryLoadTracker{sequences: make(map[string]int64)}
}

func (tracker *MemoryLoadTracker) Next(_ context.Context, clientID string) (int64, error) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	tracker.sequences[clientID]++
	return tracker.sequences[clientID], nil
}

func (tracker *MemoryLoadTracker) IsStale(_ context.Context, clientID string, sequence int64) (bool, error) {
	tracker.mutex.Lock()
	defer tracker.mutex.Unlock()
	return tracker.sequences[clientID] > sequence, nil
}
