// Package postgres provides the PostgreSQL implementation of the ledger repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrack/ledger/internal/domain"
	"github.com/fintrack/ledger/internal/ledger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

// Repository implements ledger.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL ledger repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateMovement inserts a movement and loads the denormalized owner.
func (r *Repository) CreateMovement(ctx context.Context, movement *domain.Movement) error {
	query := `
		INSERT INTO movements (id, concept, amount, date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		movement.ID,
		movement.Concept,
		movement.Amount,
		movement.Date,
		movement.UserID,
	).Scan(&movement.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return ledger.ErrOwnerNotFound
		}
		return fmt.Errorf("insert movement: %w", err)
	}

	owner := &movement.User
	err = r.db.QueryRow(ctx, `SELECT name, email FROM users WHERE id = $1`, movement.UserID).
		Scan(&owner.Name, &owner.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.ErrOwnerNotFound
		}
		return fmt.Errorf("load movement owner: %w", err)
	}

	return nil
}

// ListMovements returns all movements with owner name/email, ordered by
// date descending and creation time descending.
func (r *Repository) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	query := `
		SELECT m.id, m.concept, m.amount, m.date, m.user_id, m.created_at, u.name, u.email
		FROM movements m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.date DESC, m.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.Movement, 0)
	for rows.Next() {
		var m domain.Movement
		err := rows.Scan(
			&m.ID,
			&m.Concept,
			&m.Amount,
			&m.Date,
			&m.UserID,
			&m.CreatedAt,
			&m.User.Name,
			&m.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}
