package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newProtectedEcho(jwtService *JWTService) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		userID, ok := UserID(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "identity not bound")
		}
		return c.String(http.StatusOK, userID.String())
	}, Middleware(jwtService))
	return e
}

func TestMiddleware_ValidToken(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	e := newProtectedEcho(jwtService)

	userID := uuid.New()
	token, err := jwtService.Issue(userID)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())
}

func TestMiddleware_Unauthenticated(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	e := newProtectedEcho(jwtService)

	otherIssuer := NewJWTService("other-secret", time.Hour)
	foreign, err := otherIssuer.Issue(uuid.New())
	assert.NoError(t, err)

	expiredIssuer := NewJWTService("test-secret", time.Hour)
	expiredIssuer.ttl = -time.Minute
	expired, err := expiredIssuer.Issue(uuid.New())
	assert.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic abc123"},
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "wrong signature", header: "Bearer " + foreign},
		{name: "expired token", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
