package api

import (
	"context"
	"strings"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model/external"
	"skynow-api/pkg/http"
)

var (
	openMeteoCurrent = []string{
		"temperature_2m", "apparent_temperature", "relative_humidity_2m", "dew_point_2m", "is_day",
		"weather_code", "cloud_cover", "pressure_msl", "visibility", "wind_speed_10m",
		"wind_direction_10m", "uv_index",
	}
	openMeteoHourly = []string{
		"temperature_2m", "apparent_temperature", "relative_humidity_2m", "dew_point_2m",
		"precipitation_probability", "weather_code", "is_day", "cloud_cover", "pressure_msl",
		"visibility", "wind_speed_10m", "wind_direction_10m", "uv_index",
	}
	openMeteoDaily = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "apparent_temperature_max",
		"apparent_temperature_min", "sunrise", "sunset", "uv_index_max",
		"precipitation_probability_max", "wind_speed_10m_max", "wind_direction_10m_dominant",
	}
)

// openMeteoGatewayImpl implements the OpenMeteoGateway interface
type openMeteoGatewayImpl struct {
	httpClient *http.Client
}

// NewOpenMeteoGateway creates a new instance of OpenMeteoGateway. Open-Meteo needs no api key.
func NewOpenMeteoGateway(baseUrl string, clientOptions http.ClientOptions) OpenMeteoGateway {
	return &openMeteoGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

// FetchForecast gets current, 48 hourly and 8 daily values with unix timestamps
func (o *openMeteoGatewayImpl) FetchForecast(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.OpenMeteoResponse, error) {
	query := map[string]string{
		"latitude":       formatCoordinate(coordinates.Lat),
		"longitude":      formatCoordinate(coordinates.Lon),
		"current":        strings.Join(openMeteoCurrent, ","),
		"hourly":         strings.Join(openMeteoHourly, ","),
		"daily":          strings.Join(openMeteoDaily, ","),
		"timeformat":     "unixtime",
		"timezone":       "auto",
		"forecast_days":  "8",
		"forecast_hours": "48",
	}
	for key, value := range unitQuery(units) {
		query[key] = value
	}

	successResp, errResp, status, err := o.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/v1/forecast").
		WithQueryParams(query).
		WithSuccessResp(&external.OpenMeteoResponse{}).
		WithErrorResp(&external.OpenMeteoErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("open-meteo forecast", status, errResp, err)
	}
	return successResp.(*external.OpenMeteoResponse), nil
}

// unitQuery matches the units OpenWeather uses for the same unit system.
func unitQuery(units entity.UnitSystem) map[string]string {
	if units == entity.Imperial {
		return map[string]string{"temperature_unit": "fahrenheit", "wind_speed_unit": "mph"}
	}
	return map[string]string{"temperature_unit": "celsius", "wind_speed_unit": "ms"}
}
