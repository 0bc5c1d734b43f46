package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/google/uuid"

	"tasktrack/internal/errors"
)

// ContextKey is the echo context key under which the authenticated user id is bound.
const ContextKey = "user"

// Middleware returns the request filter applied to every protected route. It
// extracts the bearer token from the Authorization header, verifies it through
// the JWT service, and binds the resolved user id into the request context.
// Any failure yields a uniform 401 without detail on which check failed.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			userID, err := jwtService.Verify(token)
			if err != nil {
				return nil, err
			}
			return userID, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "unauthenticated",
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// UserID returns the authenticated caller's id bound by the middleware. This
// is the only source of caller identity; handlers must never trust an id
// supplied in a request body or query string.
func UserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(ContextKey).(uuid.UUID)
	return userID, ok
}
