package db

import (
	"context"

	"skynow-api/internal/domain/entity"
)

// HistoryKey is the storage key of the recency list, suffixed with the client id
const HistoryKey = "skynow_history"

// HistoryGateway persists the recency list of each client. Save replaces the whole list; a
// client with nothing stored loads as an empty list.
type HistoryGateway interface {
	Load(ctx context.Context, clientID string) ([]entity.CitySearchResult, error)
	Save(ctx context.Context, clientID string, cities []entity.CitySearchResult) error
}
