package city

import (
	"context"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
)

// SelectRequest is a city chosen by a client. Anonymous follows weather.LoadRequest.
type SelectRequest struct {
	ClientID  string
	Anonymous bool
	City      entity.CitySearchResult
	Units     entity.UnitSystem
}

type UseCase interface {
	// SearchCities never fails: short queries and provider errors give an empty list
	SearchCities(ctx context.Context, query string) []entity.CitySearchResult

	// SelectCity moves the city to the front of the client's history and loads its weather
	SelectCity(ctx context.Context, request SelectRequest) (*model.SelectCityResponse, error)

	// History returns the client's recently selected cities, most recent first
	History(ctx context.Context, clientID string) ([]entity.CitySearchResult, error)
}
