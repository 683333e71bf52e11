package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/printforge/catalog-api/internal/core/domain"
	"github.com/printforge/catalog-api/internal/core/ports"
)

const authContextKey = "auth_context"

// Auth verifies the bearer token and injects the resulting AuthContext.
// Unauthenticated requests are rejected here, before any handler or store
// call runs; the response carries the verifier's client-facing reason.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := verifier.Verify(c.Request().Context(), c.Request().Header.Get("Authorization"))
			if !auth.IsAuthenticated {
				return echo.NewHTTPError(http.StatusUnauthorized, auth.Error)
			}

			c.Set(authContextKey, auth)
			return next(c)
		}
	}
}

// AuthFromContext returns the AuthContext injected by Auth. The zero value
// (unauthenticated) comes back when the middleware did not run.
func AuthFromContext(c echo.Context) domain.AuthContext {
	auth, _ := c.Get(authContextKey).(domain.AuthContext)
	return auth
}
