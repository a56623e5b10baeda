package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"skynow-api/internal/application/middleware"
	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/usecase/weather"
	"skynow-api/pkg/log"
	"skynow-api/pkg/util/numberutils"
)

type WeatherController struct {
	api     *echo.Group
	useCase weather.UseCase
}

func NewWeatherController(api *echo.Group, useCase weather.UseCase) *WeatherController {
	return &WeatherController{api: api, useCase: useCase}
}

// InitWeatherRoutes initializes weather routes
func (controller *WeatherController) InitWeatherRoutes() {
	controller.api.GET("/weather", controller.LoadWeather)
	controller.api.POST("/weather/refresh", controller.ScheduleRefresh)
}

// LoadWeather godoc
// @Summary Get the weather for a coordinate
// @Description Load the normalized current, hourly and daily weather. Missing or invalid coordinates use the default location.
// @Tags weather
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client identifier" default(default)
// @Param lat query number false "Latitude"
// @Param lon query number false "Longitude"
// @Param units query string false "Unit system" Enums(metric, imperial) default(metric)
// @Success 200 {object} model.WeatherResponse "Normalized weather"
// @Failure 400 {object} model.ErrorResponse "Invalid unit system"
// @Failure 409 {object} model.ErrorResponse "A newer load for the client superseded this one"
// @Failure 502 {object} model.ErrorResponse "Weather provider failure"
// @Router /weather [get]
func (controller *WeatherController) LoadWeather(c echo.Context) error {
	units, err := parseUnits(c)
	if err != nil {
		return errorResponse(c, err)
	}

	response, err := controller.useCase.LoadWeather(c.Request().Context(), weather.LoadRequest{
		ClientID:    middleware.ClientID(c),
		Anonymous:   middleware.Anonymous(c),
		Coordinates: queryCoordinates(c),
		Units:       units,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// ScheduleRefresh godoc
// @Summary Enqueue a weather refresh
// @Description Enqueue a cache refresh for the default location and the refresh client's history cities
// @Tags weather
// @Produce json
// @Success 202 {object} map[string]any "Refresh enqueued"
// @Failure 503 {object} model.ErrorResponse "Refresh queue not configured"
// @Router /weather/refresh [post]
func (controller *WeatherController) ScheduleRefresh(c echo.Context) error {
	requestID := uuid.New().String()

	enqueued, err := controller.useCase.ScheduleRefresh(c.Request().Context(), requestID)
	if err != nil {
		log.Error("Failed to schedule weather refresh", zap.String("request_id", requestID), zap.Error(err))
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]any{"requestId": requestID, "enqueued": enqueued})
}

// queryCoordinates is nil unless both lat and lon parse
func queryCoordinates(c echo.Context) *entity.Coordinates {
	lat, latErr := numberutils.ToFloatWithError(c.QueryParam("lat"))
	lon, lonErr := numberutils.ToFloatWithError(c.QueryParam("lon"))
	if latErr != nil || lonErr != nil {
		return nil
	}
	return &entity.Coordinates{Lat: lat, Lon: lon}
}
