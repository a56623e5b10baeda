package model

import "skynow-api/internal/domain/entity"

// WeatherResponse is returned by every weather load
type WeatherResponse struct {
	Location string                  `json:"location"`
	Source   string                  `json:"source"`
	Sequence int64                   `json:"sequence"`
	Cached   bool                    `json:"cached"`
	Snapshot *entity.WeatherSnapshot `json:"snapshot"`
}

// CachedWeather is the snapshot cache entry for one coordinate and unit system
type CachedWeather struct {
	Location string                  `json:"location"`
	Source   string                  `json:"source"`
	Snapshot *entity.WeatherSnapshot `json:"snapshot"`
}

// SelectCityDTO is the body of a city selection
type SelectCityDTO struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Lat     float64 `json:"lat" validate:"latitude"`
	Lon     float64 `json:"lon" validate:"longitude"`
	Country string  `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	State   string  `json:"state,omitempty" validate:"max=100"`
}

// ToCity converts the body to the history entity
func (dto SelectCityDTO) ToCity() entity.CitySearchResult {
	return entity.CitySearchResult{
		Name:    dto.Name,
		Lat:     dto.Lat,
		Lon:     dto.Lon,
		Country: dto.Country,
		State:   dto.State,
	}
}

// SelectCityResponse carries the updated history and the weather of the selected city
type SelectCityResponse struct {
	History []entity.CitySearchResult `json:"history"`
	Weather *WeatherResponse          `json:"weather"`
}

// RefreshMessage is the queue payload of a scheduled weather refresh
type RefreshMessage struct {
	RequestID string  `json:"requestId"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Units     string  `json:"units"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
