package api

import (
	"context"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model/external"
)

// WeatherGateway defines the OpenWeather calls: weather in both formats and geocoding.
// Errors wrap failure.ErrUnauthorized for 401/403 answers, failure.ErrMalformedSource for
// undecodable bodies and failure.ErrNetworkFailure for everything else.
type WeatherGateway interface {
	// FetchOneCall gets the One Call 3.0 payload without minutely data and alerts
	FetchOneCall(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.OneCallResponse, error)

	// FetchCurrentWeather gets the 2.5 current conditions
	FetchCurrentWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.CurrentWeatherResponse, error)

	// FetchForecast gets the 2.5 five day, three hour forecast
	FetchForecast(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.ForecastResponse, error)

	// SearchCities looks cities up by name, returning at most limit entries
	SearchCities(ctx context.Context, query string, limit int) ([]external.GeoLocationDTO, error)

	// ReverseGeocode returns the closest named place, nil when the provider knows none
	ReverseGeocode(ctx context.Context, coordinates entity.Coordinates) (*external.GeoLocationDTO, error)
}

// OpenMeteoGateway defines the Open-Meteo forecast call
type OpenMeteoGateway interface {
	FetchForecast(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.OpenMeteoResponse, error)
}
