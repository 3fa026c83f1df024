package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/places"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

// PlacesHandler serves single-place detail lookups.
type PlacesHandler struct {
	finder service.PlaceFinder
}

// NewPlacesHandler constructs a PlacesHandler.
func NewPlacesHandler(finder service.PlaceFinder) *PlacesHandler {
	return &PlacesHandler{finder: finder}
}

// Details handles GET /api/places/:id requests.
func (h *PlacesHandler) Details(c echo.Context) error {
	placeID := c.Param("id")
	if placeID == "" {
		return Error(c, http.StatusBadRequest, "place id is required")
	}

	detail, err := h.finder.Details(c.Request().Context(), placeID, places.DetailFields)
	if err != nil {
		if errors.Is(err, places.ErrPlaceNotFound) {
			return Error(c, http.StatusNotFound, "place not found")
		}
		return Error(c, http.StatusBadGateway, "place details unavailable")
	}

	return Success(c, http.StatusOK, "place details retrieved", detail)
}
