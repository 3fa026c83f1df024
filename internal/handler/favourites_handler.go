package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

// FavouritesHandler serves the saved-places list.
type FavouritesHandler struct {
	favouritesService *service.FavouritesService
}

// NewFavouritesHandler constructs a FavouritesHandler.
func NewFavouritesHandler(favouritesService *service.FavouritesService) *FavouritesHandler {
	return &FavouritesHandler{favouritesService: favouritesService}
}

// List handles GET /api/favourites requests.
func (h *FavouritesHandler) List(c echo.Context) error {
	favourites, err := h.favouritesService.List(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load favourites")
	}
	return Success(c, http.StatusOK, "favourites retrieved", favourites)
}

// Add handles POST /api/favourites requests.
func (h *FavouritesHandler) Add(c echo.Context) error {
	var place entity.FavouritePlace
	if err := c.Bind(&place); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	added, err := h.favouritesService.Add(c.Request().Context(), place)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to save favourite")
	}
	if !added {
		return Success(c, http.StatusOK, "favourite already saved", place)
	}
	return Success(c, http.StatusCreated, "favourite saved", place)
}

// Remove handles DELETE /api/favourites/:placeID requests.
func (h *FavouritesHandler) Remove(c echo.Context) error {
	placeID := c.Param("placeID")
	if placeID == "" {
		return Error(c, http.StatusBadRequest, "place id is required")
	}

	removed, err := h.favouritesService.Remove(c.Request().Context(), placeID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to remove favourite")
	}
	if !removed {
		return Error(c, http.StatusNotFound, "favourite not found")
	}
	return Success(c, http.StatusOK, "favourite removed", nil)
}
