package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/dto"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

// HobbiesHandler serves the hobby catalogue.
type HobbiesHandler struct {
	hobbiesService *service.HobbiesService
}

// NewHobbiesHandler constructs a HobbiesHandler.
func NewHobbiesHandler(hobbiesService *service.HobbiesService) *HobbiesHandler {
	return &HobbiesHandler{hobbiesService: hobbiesService}
}

// List handles GET /api/hobbies requests.
func (h *HobbiesHandler) List(c echo.Context) error {
	hobbies, err := h.hobbiesService.All(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to load hobbies")
	}
	return Success(c, http.StatusOK, "hobbies retrieved", hobbies)
}

// AddCustom handles POST /api/hobbies requests.
func (h *HobbiesHandler) AddCustom(c echo.Context) error {
	var req dto.AddHobbyRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	added, err := h.hobbiesService.AddCustom(c.Request().Context(), req.Name)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to add hobby")
	}
	if !added {
		return Success(c, http.StatusOK, "hobby already exists", strings.TrimSpace(req.Name))
	}
	return Success(c, http.StatusCreated, "hobby added", strings.TrimSpace(req.Name))
}

// Random handles GET /api/hobbies/random requests.
func (h *HobbiesHandler) Random(c echo.Context) error {
	picks, err := h.hobbiesService.RandomPicks(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to pick hobbies")
	}
	return Success(c, http.StatusOK, "random hobbies picked", picks)
}
