package ledger

import (
	"context"

	"github.com/fintrack/ledger/internal/domain"
)

// Repository defines the interface for movement data operations.
type Repository interface {
	// CreateMovement inserts a movement and fills in its server-assigned
	// fields (creation timestamp, denormalized owner).
	CreateMovement(ctx context.Context, movement *domain.Movement) error
	// ListMovements returns the full movement set with denormalized owner
	// name/email, ordered by date descending, ties broken by creation
	// time descending.
	ListMovements(ctx context.Context) ([]domain.Movement, error)
}
