// Package directory implements admin-only user management: listing users
// and changing a user's display name and role.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/fintrack/ledger/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// Service implements user directory business logic.
type Service struct {
	repo Repository
}

// NewService creates a new directory service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListUsers returns every registered user, newest first. Credentials
// never leave this layer: the password hash is excluded at serialization.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a user's display name and role. Unknown role strings
// are rejected. There is deliberately no self-demotion guard: an admin
// may revoke their own admin role.
func (s *Service) UpdateUser(ctx context.Context, id, name string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	name = norm.NFC.String(strings.TrimSpace(name))

	user, err := s.repo.UpdateUser(ctx, id, name, role)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser is a thin pass-through to the store.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}
