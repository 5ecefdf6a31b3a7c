package repository

import (
	"context"

	"soil-advisor/internal/domain"
)

// UserRepository defines storage and retrieval of user accounts.
type UserRepository interface {
	// FindByUsername looks a user up by exact, case-sensitive username.
	// Returns ErrUserNotFound when no such user exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create persists a new user. Returns ErrDuplicateEntry when the
	// username is already taken; the unique index makes this race-safe under
	// concurrent registration.
	Create(ctx context.Context, user *domain.User) error
}
