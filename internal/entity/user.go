package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Requests without a valid token operate under
// the shared guest identity instead.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
