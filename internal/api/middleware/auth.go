package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

// userContextKey is where the resolved user is stored on the echo context.
const userContextKey = "auth.user"

// Auth extracts the bearer token from the Authorization header and runs the
// shared authenticate procedure (verify + re-resolve). The resolved user is
// injected into the request context; any failure rejects the request with 401
// before handler logic runs.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("rest", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("rest", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// bearerToken splits an "Authorization: Bearer <token>" header value.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
