package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces role-based access control. The caller must hold at
// least one of the required roles; Admin passes every check. Runs after Auth,
// so reaching it with an unauthenticated context means the route was wired
// without Auth and the deny here is the safety net.
func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !AuthFromContext(c).HasRole(required...) {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
