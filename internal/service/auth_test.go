package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tcadundee/hobby-finder/api/internal/auth"
	"github.com/tcadundee/hobby-finder/api/internal/entity"
	"github.com/tcadundee/hobby-finder/api/internal/repository"
)

type memUsers struct {
	byEmail map[string]*entity.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: map[string]*entity.User{}}
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, repository.ErrEmailDuplicate
	}
	user := &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Role: role}
	m.byEmail[email] = user
	return user, nil
}

func newAuthService(users repository.UsersRepository) *AuthService {
	return NewAuthService(users, auth.NewJWTManager("test-secret", time.Hour))
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)
	ctx := context.Background()

	token, err := svc.Register(ctx, "Jo@Example.com", "longenough")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token issued")
	}

	// Email is normalized on the way in.
	if _, ok := users.byEmail["jo@example.com"]; !ok {
		t.Fatalf("expected normalized email stored, got %+v", users.byEmail)
	}

	if _, err := svc.Login(ctx, "jo@example.com", "longenough"); err != nil {
		t.Fatalf("unexpected login error: %v", err)
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(newMemUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jo@example.com", "longenough"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, "jo@example.com", "longenough"); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuth_RegisterValidation(t *testing.T) {
	svc := newAuthService(newMemUsers())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "longenough"); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	if _, err := svc.Register(ctx, "jo@example.com", "short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	users := newMemUsers()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	users.byEmail["jo@example.com"] = &entity.User{ID: uuid.New(), Email: "jo@example.com", PasswordHash: string(hash), Role: "user"}
	svc := newAuthService(users)

	if _, err := svc.Login(context.Background(), "jo@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
