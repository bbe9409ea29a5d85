package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smartauth/auth-service/internal/api/metrics"
	"github.com/smartauth/auth-service/internal/core/domain"
	"github.com/smartauth/auth-service/internal/core/ports"
)

const basicRealm = `Basic realm="auth-service"`

// BasicAuth authenticates every request against the user store using HTTP
// Basic credentials and injects the principal into context. No session or
// token is involved; each request re-verifies independently.
func BasicAuth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "basic") {
				return unauthorized(c, "invalid authorization header")
			}

			raw, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				return unauthorized(c, "invalid authorization header")
			}
			username, password, ok := strings.Cut(string(raw), ":")
			if !ok {
				return unauthorized(c, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), username, password)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return unauthorized(c, "invalid credentials")
				}
				// Store-layer failure, not a bad password. Let the error
				// handler log it and answer 500.
				metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
				return err
			}
			metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

			c.Set("username", user.Username)
			c.Set("roles", user.RoleNames())

			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	metrics.AuthAttemptsTotal.WithLabelValues("rejected").Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, basicRealm)
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
