package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skynow-api/internal/domain/model"
	"skynow-api/internal/domain/usecase/health"
)

type HealthController struct {
	api     *echo.Group
	useCase health.UseCase
}

func NewHealthController(api *echo.Group, useCase health.UseCase) *HealthController {
	return &HealthController{api: api, useCase: useCase}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.api.GET("/health", controller.CheckHealth())
}

// CheckHealth godoc
// @Summary Service health
// @Description Status of the snapshot cache, the history store and the refresh queue workers
// @Tags health
// @Produce json
// @Success 200 {object} model.HealthResponse "Every component is UP or UNKNOWN"
// @Failure 503 {object} model.HealthResponse "A component is DOWN"
// @Router /health [get]
func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		healthResponse := controller.useCase.CheckHealth(c.Request().Context())

		status := http.StatusOK
		if healthResponse.Status == model.StatusDown {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, healthResponse)
	}
}
