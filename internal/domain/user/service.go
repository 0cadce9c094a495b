package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/mutua/mutua/internal/platform/auth"
)

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Authenticate verifies a username/password pair against the stored tagged
// hash. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials so the login endpoint cannot be used to enumerate
// accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if !auth.VerifyPassword(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByUsername returns the stored user record.
func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, username, password string, active bool) (*User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	u := &User{
		Username:       username,
		HashedPassword: auth.HashPassword(password),
		IsActive:       active,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
