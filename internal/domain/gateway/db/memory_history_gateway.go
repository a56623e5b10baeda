package db

import (
	"context"
	"sync"

	"skynow-api/internal/domain/entity"
)

// MemoryHistoryGateway keeps history in process, for single instance deployments and tests
type MemoryHistoryGateway struct {
	mutex   sync.RWMutex
	history map[string][]entity.CitySearchResult
}

var _ HistoryGateway = (*MemoryHistoryGateway)(nil)

func NewMemoryHistoryGateway() *MemoryHistoryGateway {
	return &MemoryHistoryGateway{history: make(map[string][]entity.CitySearchResult)}
}

func (gateway *MemoryHistoryGateway) Load(_ context.Context, clientID string) ([]entity.CitySearchResult, error) {
	gateway.mutex.RLock()
	defer gateway.mutex.RUnlock()
	return append([]entity.CitySearchResult{}, gateway.history[clientID]...), nil
}

func (gateway *MemoryHistoryGateway) Save(_ context.Context, clientID string, cities []entity.CitySearchResult) error {
	gateway.mutex.Lock()
	defer gateway.mutex.Unlock()
	gateway.history[clientID] = append([]entity.CitySearchResult{}, cities...)
	return nil
}
