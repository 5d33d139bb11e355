package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// RBAC enforces role-based access control on top of Auth. The required set is
// declared statically at route registration; an empty set admits any
// authenticated user. Forbidden (403) is deliberately distinct from the 401
// the Auth middleware produces.
func RBAC(auth ports.AuthService, required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				metrics.AuthFailuresTotal.WithLabelValues("rest", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			if err := auth.Authorize(user.Role, required...); err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("rest", "forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user resolved by the Auth middleware, or nil when
// the request is unauthenticated.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
