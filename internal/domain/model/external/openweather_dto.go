package external

import (
	"fmt"

	"skynow-api/internal/domain/entity"
)

// OneCallResponse represents the response from the One Call 3.0 API.
// Current, Hourly and Daily are nil when the provider omitted them.
type OneCallResponse struct {
	Lat            float64                `json:"lat"`
	Lon            float64                `json:"lon"`
	Timezone       string                 `json:"timezone"`
	TimezoneOffset int                    `json:"timezone_offset"`
	Current        *entity.CurrentWeather `json:"current"`
	Hourly         []entity.HourlyWeather `json:"hourly"`
	Daily          []entity.DailyWeather  `json:"daily"`
}

// CurrentWeatherResponse represents the response from the 2.5 current weather API
type CurrentWeatherResponse struct {
	Coord      CoordDTO              `json:"coord"`
	Weather    []WeatherConditionDTO `json:"weather"`
	Main       *MainDTO              `json:"main"`
	Visibility *float64              `json:"visibility"`
	Wind       WindDTO               `json:"wind"`
	Clouds     CloudsDTO             `json:"clouds"`
	Dt         int64                 `json:"dt"`
	Sys        SysDTO                `json:"sys"`
	Timezone   int                   `json:"timezone"`
	Name       string                `json:"name"`
}

// ForecastResponse represents the response from the 2.5 three hour forecast API
type ForecastResponse struct {
	List []ForecastEntryDTO `json:"list"`
	City ForecastCityDTO    `json:"city"`
}

type ForecastEntryDTO struct {
	Dt         int64                 `json:"dt"`
	Main       MainDTO               `json:"main"`
	Weather    []WeatherConditionDTO `json:"weather"`
	Clouds     CloudsDTO             `json:"clouds"`
	Wind       WindDTO               `json:"wind"`
	Visibility *float64              `json:"visibility"`
	Pop        *float64              `json:"pop"`
	DtTxt      string                `json:"dt_txt"`
}

type ForecastCityDTO struct {
	Name     string   `json:"name"`
	Coord    CoordDTO `json:"coord"`
	Country  string   `json:"country"`
	Timezone int      `json:"timezone"`
	Sunrise  int64    `json:"sunrise"`
	Sunset   int64    `json:"sunset"`
}

type CoordDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type WeatherConditionDTO struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type MainDTO struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type WindDTO struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

type CloudsDTO struct {
	All float64 `json:"all"`
}

type SysDTO struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// GeoLocationDTO represents one entry of the direct and reverse geocoding APIs
type GeoLocationDTO struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
}

// APIErrorResponse represents an OpenWeather error body. Cod is a number or a string depending on the endpoint.
type APIErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func (e *APIErrorResponse) String() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%v %s", e.Cod, e.Message)
}
