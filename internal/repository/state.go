package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GuestUserID is the shared namespace used when no authenticated user is present.
const GuestUserID = "guest"

// UserKey namespaces a per-user state key as <userId>:<key>. An empty user
// identifier falls back to the shared guest namespace.
func UserKey(userID, key string) string {
	if userID == "" {
		userID = GuestUserID
	}
	return userID + ":" + key
}

// StateRepository stores namespaced key-value application state. Writes are
// full-value overwrites, so concurrent writers resolve last-writer-wins.
type StateRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLiteStateRepository implements StateRepository on the embedded database.
type SQLiteStateRepository struct {
	db *sql.DB
}

// NewSQLiteStateRepository instantiates a state repository.
func NewSQLiteStateRepository(db *sql.DB) *SQLiteStateRepository {
	return &SQLiteStateRepository{db: db}
}

// Get returns the stored value and whether the key was present. Absence is
// not an error; callers supply their own defaults.
func (r *SQLiteStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("query state %q: %w", key, err)
	}

	return value, true, nil
}

// Set overwrites the value for the key.
func (r *SQLiteStateRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO app_state (key, value, updated_at)
        VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

// Delete removes the key if present.
func (r *SQLiteStateRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
