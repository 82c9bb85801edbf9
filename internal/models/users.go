package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can authenticate against the API. Password holds
// the bcrypt hash, never the plaintext.
type User struct {
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	Password  string     `json:"-"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CreateUser is the payload for registering a user. Password arrives as
// plaintext and is hashed before it reaches storage.
type CreateUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
