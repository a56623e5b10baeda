package db

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"skynow-api/internal/domain/entity"
	"skynow-api/pkg/log"
	"skynow-api/pkg/redis"
)

type RedisHistoryGateway struct {
	client *redis.Client
}

var _ HistoryGateway = (*RedisHistoryGateway)(nil)

func NewRedisHistoryGateway(client *redis.Client) *RedisHistoryGateway {
	return &RedisHistoryGateway{client: client}
}

// Load reads the JSON list. An unreadable value is logged and treated as empty.
func (gateway *RedisHistoryGateway) Load(ctx context.Context, clientID string) ([]entity.CitySearchResult, error) {
	data, err := gateway.client.GetBytes(ctx, historyKey(clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if data == nil {
		return []entity.CitySearchResult{}, nil
	}

	var cities []entity.CitySearchResult
	if err := json.Unmarshal(data, &cities); err != nil {
		log.Warn("Discarding unreadable history", zap.String("client_id", clientID), zap.Error(err))
		return []entity.CitySearchResult{}, nil
	}
	if cities == nil {
		cities = []entity.CitySearchResult{}
	}
	return cities, nil
}

// Save writes the list without expiration
func (gateway *RedisHistoryGateway) Save(ctx context.Context, clientID string, cities []entity.CitySearchResult) error {
	if cities == nil {
		cities = []entity.CitySearchResult{}
	}
	if err := gateway.client.SetJSON(ctx, historyKey(clientID), cities, 0); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func historyKey(clientID string) string {
	return HistoryKey + ":" + clientID
}
