package repositories

import (
	"context"

	"github.com/aakritisaxena/ExpenseManagement/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindFirstActiveByRole retrieves the first active user holding a role,
	// ordered by username for deterministic routing.
	FindFirstActiveByRole(ctx context.Context, role domain.UserRole) (*domain.User, error)

	// ListUsers retrieves users with offset pagination.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// SaveRefreshTokenHash stores the SHA256 hash of a user's refresh token;
	// a nil hash clears it.
	SaveRefreshTokenHash(ctx context.Context, userID string, tokenHash *string) error
}

// RefreshTokenReader retrieves the stored refresh token hash for comparison.
type RefreshTokenReader interface {
	FindRefreshTokenHash(ctx context.Context, userID string) (*string, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	RefreshTokenReader
}
