package directory

import (
	"context"

	"github.com/fintrack/ledger/internal/domain"
)

// Repository defines the interface for user directory data operations.
type Repository interface {
	// ListUsers returns all users ordered by creation time descending.
	ListUsers(ctx context.Context) ([]domain.User, error)
	// UpdateUser sets name and role of an existing user and returns the
	// updated record.
	UpdateUser(ctx context.Context, id, name string, role domain.Role) (*domain.User, error)
	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, id string) error
}
