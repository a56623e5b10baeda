package middleware

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"skynow-api/internal/domain/model"
)

const (
	ClientIDHeader  = "X-Client-ID"
	DefaultClientID = "default"
	clientIDKey     = "clientID"
	anonymousKey    = "anonymousClient"
)

var validate = validator.New()

// ClientIdentifier reads the X-Client-ID header into the context. A missing header is the
// shared "default" client and the request is marked anonymous.
func ClientIdentifier() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := strings.TrimSpace(c.Request().Header.Get(ClientIDHeader))
			anonymous := clientID == ""
			if anonymous {
				clientID = DefaultClientID
			}
			if err := validate.Var(clientID, "printascii,max=64"); err != nil || strings.ContainsAny(clientID, " :") {
				return c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid " + ClientIDHeader + " header"})
			}
			c.Set(clientIDKey, clientID)
			c.Set(anonymousKey, anonymous)
			return next(c)
		}
	}
}

// ClientID returns the client of the request, "default" when the middleware did not run
func ClientID(c echo.Context) string {
	if clientID, ok := c.Get(clientIDKey).(string); ok {
		return clientID
	}
	return DefaultClientID
}

// Anonymous reports whether the request carried no client id
func Anonymous(c echo.Context) bool {
	if anonymous, ok := c.Get(anonymousKey).(bool); ok {
		return anonymous
	}
	return true
}
