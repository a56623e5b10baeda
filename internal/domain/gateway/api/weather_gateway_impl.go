package api

import (
	"context"
	"strconv"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/model/external"
	"skynow-api/pkg/http"
)

// weatherGatewayImpl implements the WeatherGateway interface
type weatherGatewayImpl struct {
	httpClient *http.Client
}

// NewWeatherGateway creates a new instance of WeatherGateway. The api key is sent as the appid
// query parameter of every request.
func NewWeatherGateway(baseUrl string, apiKey string, clientOptions http.ClientOptions) WeatherGateway {
	defaults := map[string]string{"appid": apiKey}
	for key, value := range clientOptions.DefaultQueryParams {
		defaults[key] = value
	}
	clientOptions.DefaultQueryParams = defaults

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
	}
}

// FetchOneCall gets the One Call 3.0 payload
func (w *weatherGatewayImpl) FetchOneCall(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.OneCallResponse, error) {
	query := coordinateQuery(coordinates, units)
	query["exclude"] = "minutely,alerts"

	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/data/3.0/onecall").
		WithQueryParams(query).
		WithSuccessResp(&external.OneCallResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("onecall", status, errResp, err)
	}
	return successResp.(*external.OneCallResponse), nil
}

// FetchCurrentWeather gets the 2.5 current conditions
func (w *weatherGatewayImpl) FetchCurrentWeather(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.CurrentWeatherResponse, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/data/2.5/weather").
		WithQueryParams(coordinateQuery(coordinates, units)).
		WithSuccessResp(&external.CurrentWeatherResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("current weather", status, errResp, err)
	}
	return successResp.(*external.CurrentWeatherResponse), nil
}

// FetchForecast gets the 2.5 three hour forecast
func (w *weatherGatewayImpl) FetchForecast(ctx context.Context, coordinates entity.Coordinates, units entity.UnitSystem) (*external.ForecastResponse, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/data/2.5/forecast").
		WithQueryParams(coordinateQuery(coordinates, units)).
		WithSuccessResp(&external.ForecastResponse{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("forecast", status, errResp, err)
	}
	return successResp.(*external.ForecastResponse), nil
}

// SearchCities calls the direct geocoding API
func (w *weatherGatewayImpl) SearchCities(ctx context.Context, query string, limit int) ([]external.GeoLocationDTO, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/geo/1.0/direct").
		WithQueryParams(map[string]string{"q": query, "limit": strconv.Itoa(limit)}).
		WithSuccessResp(&[]external.GeoLocationDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("city search", status, errResp, err)
	}

	response := *successResp.(*[]external.GeoLocationDTO)
	if len(response) > limit {
		response = response[:limit]
	}
	return response, nil
}

// ReverseGeocode calls the reverse geocoding API
func (w *weatherGatewayImpl) ReverseGeocode(ctx context.Context, coordinates entity.Coordinates) (*external.GeoLocationDTO, error) {
	successResp, errResp, status, err := w.httpClient.Request().
		WithContext(ctx).
		WithMethod(http.GET).
		WithPath("/geo/1.0/reverse").
		WithQueryParams(map[string]string{
			"lat":   formatCoordinate(coordinates.Lat),
			"lon":   formatCoordinate(coordinates.Lon),
			"limit": "1",
		}).
		WithSuccessResp(&[]external.GeoLocationDTO{}).
		WithErrorResp(&external.APIErrorResponse{}).
		Execute()

	if err != nil {
		return nil, classify("reverse geocoding", status, errResp, err)
	}

	response := *successResp.(*[]external.GeoLocationDTO)
	if len(response) == 0 {
		return nil, nil
	}
	return &response[0], nil
}

func coordinateQuery(coordinates entity.Coordinates, units entity.UnitSystem) map[string]string {
	return map[string]string{
		"lat":   formatCoordinate(coordinates.Lat),
		"lon":   formatCoordinate(coordinates.Lon),
		"units": units.String(),
	}
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
