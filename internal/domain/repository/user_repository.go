package repository

import (
	"context"
	"errors"

	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Create when the email unique index rejects the row.
	ErrEmailTaken = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
// Emails passed in are expected to be normalized already.
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create inserts u and fills ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByID returns ErrNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
