package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "auth.principal"

// Middleware validates the request token and stores the resulting Principal in
// the echo context. Requests without a valid token are rejected before any
// handler runs.
func Middleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c.Request())
			claims, err := validator.Validate(token)
			if err != nil {
				slog.Warn("auth rejected", slog.String("path", c.Path()), slog.Any("error", err))
				status := http.StatusUnauthorized
				if errors.Is(err, ErrMissingToken) {
					status = http.StatusBadRequest
				}
				return echo.NewHTTPError(status, "invalid or missing token")
			}
			c.Set(principalContextKey, PrincipalFromClaims(claims))
			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal the middleware stored for this request.
func PrincipalFrom(c echo.Context) Principal {
	if p, ok := c.Get(principalContextKey).(Principal); ok {
		return p
	}
	return Principal{}
}
