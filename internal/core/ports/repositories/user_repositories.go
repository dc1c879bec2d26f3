package repositories

import (
	"context"

	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail matches the email case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByIDs returns the users with the given ids, in the order of ids. Unknown ids are skipped.
	FindUsersByIDs(ctx context.Context, userIDs []string) ([]domain.User, error)

	// FindUsers retrieves a paginated list of users sorted by name.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
