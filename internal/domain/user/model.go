// Package user holds the credential store: the users table, login
// verification and the /token and /users/me endpoints.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// User maps to the users table. The stored hash is tagged with its scheme
// (see platform/auth) and is never serialized.
type User struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
