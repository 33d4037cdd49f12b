package repository

import (
	"context"
	"errors"

	"auth-api/internal/domain"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when an insert violates the username
	// uniqueness constraint.
	ErrUserExists = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities. The
// store, not its callers, is the authoritative guard on username
// uniqueness: concurrent inserts of the same username must lose with
// ErrUserExists.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
