package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

// SettingsHandler serves per-user search settings, profile and recents.
type SettingsHandler struct {
	settingsService *service.SettingsService
	recentsService  *service.RecentsService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settingsService *service.SettingsService, recentsService *service.RecentsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, recentsService: recentsService}
}

// GetSettings handles GET /api/settings requests.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Load(c.Request().Context(), currentUserID(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load settings")
	}
	return Success(c, http.StatusOK, "settings retrieved", settings)
}

// SaveSettings handles PUT /api/settings requests.
func (h *SettingsHandler) SaveSettings(c echo.Context) error {
	var settings entity.SearchSettings
	if err := c.Bind(&settings); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.settingsService.Save(c.Request().Context(), currentUserID(c), settings); err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to save settings")
	}

	return Success(c, http.StatusOK, "settings saved", settings)
}

// GetProfile handles GET /api/profile requests.
func (h *SettingsHandler) GetProfile(c echo.Context) error {
	profile, err := h.settingsService.LoadProfile(c.Request().Context(), currentUserID(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load profile")
	}
	return Success(c, http.StatusOK, "profile retrieved", profile)
}

// SaveProfile handles PUT /api/profile requests.
func (h *SettingsHandler) SaveProfile(c echo.Context) error {
	var profile entity.Profile
	if err := c.Bind(&profile); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.settingsService.SaveProfile(c.Request().Context(), currentUserID(c), profile); err != nil {
		return Error(c, http.StatusInternalServerError, "unable to save profile")
	}
	return Success(c, http.StatusOK, "profile saved", profile)
}

// GetRecents handles GET /api/recents requests.
func (h *SettingsHandler) GetRecents(c echo.Context) error {
	recents, err := h.recentsService.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load recent searches")
	}
	return Success(c, http.StatusOK, "recent searches retrieved", recents)
}
