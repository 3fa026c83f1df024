package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/dto"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

func TestHobbiesHandler_ListIncludesCustom(t *testing.T) {
	e := echo.New()
	handler := NewHobbiesHandler(service.NewHobbiesService(newMemState()))

	rec := httptest.NewRecorder()
	_ = handler.AddCustom(e.NewContext(jsonRequest(t, http.MethodPost, "/api/hobbies", dto.AddHobbyRequest{Name: "Falconry"}), rec))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := handler.List(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/hobbies", nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := decodeEnvelope(t, rec).Data.([]any)
	if !ok || len(list) == 0 {
		t.Fatalf("expected hobby list, got %+v", list)
	}
	if list[len(list)-1] != "Falconry" {
		t.Fatalf("expected custom hobby appended, got %v", list[len(list)-1])
	}
}

func TestHobbiesHandler_DuplicateCustomIsNotAnError(t *testing.T) {
	e := echo.New()
	handler := NewHobbiesHandler(service.NewHobbiesService(newMemState()))

	rec := httptest.NewRecorder()
	_ = handler.AddCustom(e.NewContext(jsonRequest(t, http.MethodPost, "/api/hobbies", dto.AddHobbyRequest{Name: "Falconry"}), rec))

	rec = httptest.NewRecorder()
	_ = handler.AddCustom(e.NewContext(jsonRequest(t, http.MethodPost, "/api/hobbies", dto.AddHobbyRequest{Name: "falconry"}), rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for case-insensitive duplicate, got %d", rec.Code)
	}
}

func TestHobbiesHandler_RejectsEmptyName(t *testing.T) {
	e := echo.New()
	handler := NewHobbiesHandler(service.NewHobbiesService(newMemState()))

	rec := httptest.NewRecorder()
	_ = handler.AddCustom(e.NewContext(jsonRequest(t, http.MethodPost, "/api/hobbies", dto.AddHobbyRequest{Name: "   "}), rec))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}
}

func TestHobbiesHandler_RandomPicksThree(t *testing.T) {
	e := echo.New()
	handler := NewHobbiesHandler(service.NewHobbiesService(newMemState()))

	rec := httptest.NewRecorder()
	if err := handler.Random(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/hobbies/random", nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	picks, ok := decodeEnvelope(t, rec).Data.([]any)
	if !ok || len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %+v", picks)
	}
}
