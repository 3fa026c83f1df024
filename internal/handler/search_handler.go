package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/dto"
	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

// SearchHandler exposes the place-search pipeline.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// requestPosition is a position fix supplied as query parameters by a client
// that already holds a device fix.
type requestPosition struct {
	coords entity.Coordinates
}

func (p requestPosition) CurrentPosition(ctx context.Context, _ service.PositionOptions) (entity.Coordinates, error) {
	return p.coords, ctx.Err()
}

// Search handles GET /api/search requests.
//
// Query parameters: query (keyword, optional when a previous one is
// remembered), lat/lng (device fix for location mode), city (name to geocode)
// or city_name/city_lat/city_lng (an autocomplete pick carrying geometry).
func (h *SearchHandler) Search(c echo.Context) error {
	input := service.SearchInput{
		UserID:  currentUserID(c),
		Keyword: c.QueryParam("query"),
		Resolve: service.ResolveInput{City: c.QueryParam("city")},
	}

	if coords, ok := parseCoords(c.QueryParam("lat"), c.QueryParam("lng")); ok {
		input.Resolve.Position = requestPosition{coords: coords}
	}
	if coords, ok := parseCoords(c.QueryParam("city_lat"), c.QueryParam("city_lng")); ok {
		input.Resolve.Selected = &service.CitySelection{
			Name:     c.QueryParam("city_name"),
			Location: coords,
		}
	}

	result, err := h.searchService.Search(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoKeyword):
			return Error(c, http.StatusBadRequest, "No search term selected.")
		case errors.Is(err, service.ErrNoCity):
			return Error(c, http.StatusBadRequest, "Enter a city to search in settings.")
		case errors.Is(err, service.ErrCityNotFound):
			return Error(c, http.StatusNotFound, "City not found.")
		case errors.Is(err, service.ErrNoOrigin):
			return Error(c, http.StatusNotFound, "Location denied or unavailable.")
		case errors.Is(err, service.ErrSuperseded):
			return Error(c, http.StatusConflict, err.Error())
		default:
			return Error(c, http.StatusInternalServerError, "search failed")
		}
	}

	return Success(c, http.StatusOK, result.Status, dto.SearchResponse{
		Keyword: result.Keyword,
		Origin:  result.Origin,
		Count:   len(result.Places),
		Places:  result.Places,
	})
}

func parseCoords(latRaw, lngRaw string) (entity.Coordinates, bool) {
	if latRaw == "" || lngRaw == "" {
		return entity.Coordinates{}, false
	}
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	if latErr != nil || lngErr != nil {
		return entity.Coordinates{}, false
	}
	return entity.Coordinates{Lat: lat, Lng: lng}, true
}
