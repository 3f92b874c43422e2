// Package ledger implements the movement ledger: recording and listing
// signed monetary movements.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fintrack/ledger/internal/domain"
	"github.com/fintrack/ledger/internal/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Service implements ledger business logic.
type Service struct {
	repo Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput contains the fields of a new movement.
type CreateInput struct {
	Concept string
	Amount  float64
	Date    time.Time
	UserID  string
}

// CreateMovement records a movement. Only presence is enforced here:
// past or future dates, negative and zero amounts are all accepted. The
// stricter positive-amount and no-future-date rules live in the client
// form validator and are intentionally not mirrored server-side.
func (s *Service) CreateMovement(ctx context.Context, input CreateInput) (*domain.Movement, error) {
	concept := norm.NFC.String(strings.TrimSpace(input.Concept))
	if concept == "" || input.Date.IsZero() || input.UserID == "" {
		return nil, ErrMissingFields
	}

	movement := &domain.Movement{
		ID:      uuid.NewString(),
		Concept: concept,
		Amount:  input.Amount,
		Date:    input.Date,
		UserID:  input.UserID,
	}

	if err := s.repo.CreateMovement(ctx, movement); err != nil {
		return nil, fmt.Errorf("create movement: %w", err)
	}

	metrics.MovementsCreated.WithLabelValues(strings.ToLower(movement.TypeLabel())).Inc()

	return movement, nil
}

// ListMovements returns all movements, newest first (date, then creation
// time). No pagination: the product renders the full set.
func (s *Service) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	movements, err := s.repo.ListMovements(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movements, nil
}
