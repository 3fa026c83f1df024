package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/tcadundee/hobby-finder/api/internal/auth"
)

// JWT validates bearer tokens and stores user metadata in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, manager)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)

			return next(c)
		}
	}
}

// OptionalJWT stores user metadata when a valid bearer token is present and
// lets the request through as a guest otherwise. Search settings, recents and
// profile fall back to the shared guest namespace for guests.
func OptionalJWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, manager)
			if err == nil {
				c.Set(ContextKeyUserID, claims.Subject)
				c.Set(ContextKeyUserEmail, claims.Email)
				c.Set(ContextKeyUserRole, claims.Role)
			}
			return next(c)
		}
	}
}

type middlewareError string

func (e middlewareError) Error() string { return string(e) }

func claimsFromRequest(c echo.Context, manager *authpkg.JWTManager) (*authpkg.Claims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, middlewareError("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, middlewareError("invalid authorization header")
	}

	claims, err := manager.Parse(parts[1])
	if err != nil {
		return nil, middlewareError("invalid token")
	}
	return claims, nil
}
