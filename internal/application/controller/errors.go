package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"skynow-api/internal/domain/entity"
	"skynow-api/internal/domain/failure"
	"skynow-api/internal/domain/model"
	"skynow-api/pkg/msg"
)

var validate = validator.New()

// errorStatus maps domain failures to HTTP statuses. Provider failures are a bad gateway.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, failure.ErrInvalidUnits), errors.Is(err, failure.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, failure.ErrStaleLoad):
		return http.StatusConflict
	case errors.Is(err, failure.ErrUnauthorized), errors.Is(err, failure.ErrNetworkFailure), errors.Is(err, failure.ErrMalformedSource):
		return http.StatusBadGateway
	case errors.Is(err, failure.ErrRefreshUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes the mapped status. Only client errors echo the error text, every other
// status answers with a catalog message.
func errorResponse(c echo.Context, err error) error {
	status := errorStatus(err)
	var message string
	switch status {
	case http.StatusBadRequest:
		message = err.Error()
	case http.StatusConflict:
		message = msg.GetMessage("weather.error.superseded")
	case http.StatusBadGateway:
		message = msg.GetMessage("weather.error.load-failed")
	case http.StatusServiceUnavailable:
		message = msg.GetMessage("refresh.error.unavailable")
	default:
		message = msg.GetMessage("app.internal-error")
	}
	return c.JSON(status, model.ErrorResponse{Error: message})
}

// parseUnits reads the units query parameter, metric when absent
func parseUnits(c echo.Context) (entity.UnitSystem, error) {
	token := c.QueryParam("units")
	units, err := entity.ParseUnitSystem(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", msg.GetMessage("weather.error.invalid-units", token), failure.ErrInvalidUnits)
	}
	return units, nil
}
