package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// BasicAuthMiddleware gates every route behind HTTP Basic Auth with
// credentials from BASIC_AUTH_USERNAME / BASIC_AUTH_PASSWORD. When either
// variable is unset the gate is disabled and requests pass straight
// through, which keeps local development friction-free.
func BasicAuthMiddleware() echo.MiddlewareFunc {
	username := os.Getenv("BASIC_AUTH_USERNAME")
	password := os.Getenv("BASIC_AUTH_PASSWORD")

	if username == "" || password == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return echomiddleware.BasicAuthWithConfig(echomiddleware.BasicAuthConfig{
		Realm: "Subtracker",
		Validator: func(reqUsername, reqPassword string, c echo.Context) (bool, error) {
			userOK := subtle.ConstantTimeCompare([]byte(reqUsername), []byte(username)) == 1
			passOK := subtle.ConstantTimeCompare([]byte(reqPassword), []byte(password)) == 1
			return userOK && passOK, nil
		},
	})
}
