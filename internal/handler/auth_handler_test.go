package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tcadundee/hobby-finder/api/internal/auth"
	"github.com/tcadundee/hobby-finder/api/internal/dto"
	"github.com/tcadundee/hobby-finder/api/internal/service"
)

func newAuthHandler() (*AuthHandler, *memUsers) {
	users := newMemUsers()
	manager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthHandler(service.NewAuthService(users, manager)), users
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler()

	req := jsonRequest(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Email: "jo@example.com", Password: "correct horse"})
	rec := httptest.NewRecorder()
	if err := handler.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	req = jsonRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "jo@example.com", Password: "correct horse"})
	rec = httptest.NewRecorder()
	if err := handler.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope.Data.(map[string]any)
	if !ok || data["access_token"] == "" {
		t.Fatalf("expected access token in response, got %+v", envelope)
	}
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler()

	payload := dto.RegisterRequest{Email: "jo@example.com", Password: "correct horse"}
	rec := httptest.NewRecorder()
	_ = handler.Register(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/register", payload), rec))

	rec = httptest.NewRecorder()
	_ = handler.Register(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/register", payload), rec))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler()

	rec := httptest.NewRecorder()
	_ = handler.Register(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Email: "jo@example.com", Password: "correct horse"}), rec))

	rec = httptest.NewRecorder()
	_ = handler.Login(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{Email: "jo@example.com", Password: "wrong"}), rec))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}
}

func TestAuthHandler_MissingFields(t *testing.T) {
	e := echo.New()
	handler, _ := newAuthHandler()

	rec := httptest.NewRecorder()
	_ = handler.Login(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/login", dto.LoginRequest{}), rec))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty credentials, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	_ = handler.Register(e.NewContext(jsonRequest(t, http.MethodPost, "/auth/register", dto.RegisterRequest{Email: "jo@example.com"}), rec))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", rec.Code)
	}
}
