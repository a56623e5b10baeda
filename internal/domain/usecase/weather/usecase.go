package weather

import (
	"context"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model"
)

// LoadRequest is one weather load issued by a client. A nil or invalid coordinate selects the
// default location.
type LoadRequest struct {
	ClientID string
	// Anonymous loads come from callers that sent no client id. They share ClientID with each
	// other, so they take no load sequence and are never discarded as stale.
	Anonymous   bool
	Coordinates *entity.Coordinates
	Units       entity.UnitSystem
}

type UseCase interface {
	// LoadWeather returns the snapshot for the request, served from cache when possible
	LoadWeather(ctx context.Context, request LoadRequest) (*model.WeatherResponse, error)

	// RefreshWeather fetches a fresh snapshot and rewrites its cache entry
	RefreshWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*model.WeatherResponse, error)

	// ScheduleRefresh enqueues one refresh message per known city and returns how many were accepted
	ScheduleRefresh(ctx context.Context, requestID string) (int, error)

	// DefaultLocation is used when a client supplies no usable coordinate
	DefaultLocation() entity.Coordinates
}
