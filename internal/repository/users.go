package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/tcadundee/hobby-finder/api/internal/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup criteria.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailDuplicate is returned when the email is already registered.
	ErrEmailDuplicate = errors.New("email already exists")
)

// UsersRepository declares persistence operations for users.
type UsersRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
}

// SQLiteUsersRepository implements UsersRepository on the embedded database.
type SQLiteUsersRepository struct {
	db *sql.DB
}

// NewSQLiteUsersRepository instantiates a users repository.
func NewSQLiteUsersRepository(db *sql.DB) *SQLiteUsersRepository {
	return &SQLiteUsersRepository{db: db}
}

// FindByEmail fetches a user by email if present.
func (r *SQLiteUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE email = ?`, email)
	return scanUser(row, "email")
}

// FindByID retrieves a user by identifier.
func (r *SQLiteUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE id = ?`, id.String())
	return scanUser(row, "id")
}

// Create inserts a new user row.
func (r *SQLiteUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, user.ID.String(), user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, fmt.Errorf("%w: %v", ErrEmailDuplicate, err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func scanUser(row *sql.Row, by string) (*entity.User, error) {
	var (
		user entity.User
		id   string
	)
	if err := row.Scan(&id, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by %s: %w", by, err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	user.ID = parsed

	return &user, nil
}
