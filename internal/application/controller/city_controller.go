package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skynow-api/internal/application/middleware"
	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/usecase/city"
	"skynow-api/pkg/msg"
)

type CityController struct {
	api     *echo.Group
	useCase city.UseCase
}

func NewCityController(api *echo.Group, useCase city.UseCase) *CityController {
	return &CityController{api: api, useCase: useCase}
}

// InitCityRoutes initializes city search and history routes
func (controller *CityController) InitCityRoutes() {
	controller.api.GET("/cities/search", controller.SearchCities)
	controller.api.POST("/cities/select", controller.SelectCity)
	controller.api.GET("/history", controller.History)
}

// SearchCities godoc
// @Summary Search cities by name
// @Description Up to 5 matches. Queries of 2 characters or fewer and provider failures give an empty list.
// @Tags cities
// @Produce json
// @Param q query string true "City name"
// @Success 200 {array} entity.CitySearchResult "Matching cities"
// @Router /cities/search [get]
func (controller *CityController) SearchCities(c echo.Context) error {
	results := controller.useCase.SearchCities(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, results)
}

// SelectCity godoc
// @Summary Select a city
// @Description Record the city in the client's history and load its weather
// @Tags cities
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "Client identifier" default(default)
// @Param units query string false "Unit system" Enums(metric, imperial) default(metric)
// @Param city body model.SelectCityDTO true "Selected city"
// @Success 200 {object} model.SelectCityResponse "Updated history and weather"
// @Failure 400 {object} model.ErrorResponse "Invalid request body or unit system"
// @Failure 502 {object} model.ErrorResponse "Weather provider failure"
// @Router /cities/select [post]
func (controller *CityController) SelectCity(c echo.Context) error {
	units, err := parseUnits(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var dto model.SelectCityDTO
	if err := c.Bind(&dto); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("app.invalid-body")})
	}
	if err := validate.Struct(dto); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msg.GetMessage("city.error.invalid", err.Error())})
	}

	response, err := controller.useCase.SelectCity(c.Request().Context(), city.SelectRequest{
		ClientID:  middleware.ClientID(c),
		Anonymous: middleware.Anonymous(c),
		City:      dto.ToCity(),
		Units:     units,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// History godoc
// @Summary Recently selected cities
// @Description The client's last 5 selected cities, most recent first
// @Tags cities
// @Produce json
// @Param X-Client-ID header string false "Client identifier" default(default)
// @Success 200 {array} entity.CitySearchResult "Recent cities"
// @Failure 500 {object} model.ErrorResponse "History store unavailable"
// @Router /history [get]
func (controller *CityController) History(c echo.Context) error {
	history, err := controller.useCase.History(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: msg.GetMessage("history.error.unavailable")})
	}
	return c.JSON(http.StatusOK, history)
}
