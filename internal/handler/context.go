package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/middleware"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

// currentUserID returns the authenticated user id, or the guest id when the
// request carries no valid token.
func currentUserID(c echo.Context) string {
	if id, ok := c.Get(middleware.ContextKeyUserID).(string); ok && id != "" {
		return id
	}
	return repository.GuestUserID
}
