package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/cache"
)

// CacheAdminHandler exposes cache lifecycle operations to administrators.
type CacheAdminHandler struct {
	manager *cache.Manager
}

// NewCacheAdminHandler constructs a CacheAdminHandler.
func NewCacheAdminHandler(manager *cache.Manager) *CacheAdminHandler {
	return &CacheAdminHandler{manager: manager}
}

// Install handles POST /admin/cache/install requests. The bucket for the
// current version is populated from upstream; a single failed fetch leaves
// the store untouched.
func (h *CacheAdminHandler) Install(c echo.Context) error {
	if err := h.manager.Install(c.Request().Context()); err != nil {
		return Error(c, http.StatusBadGateway, "cache install failed: "+err.Error())
	}
	return Success(c, http.StatusOK, "cache installed", nil)
}

// Activate handles POST /admin/cache/activate requests, evicting every
// bucket that does not belong to the current version.
func (h *CacheAdminHandler) Activate(c echo.Context) error {
	if err := h.manager.Activate(c.Request().Context()); err != nil {
		return Error(c, http.StatusInternalServerError, "cache activate failed: "+err.Error())
	}
	return Success(c, http.StatusOK, "cache activated", nil)
}
