package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	movements   []domain.Movement
	createErr   error
	listErr     error
	createCalls int
	listCalls   int
}

func (m *mockRepository) CreateMovement(_ context.Context, movement *domain.Movement) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	movement.CreatedAt = time.Now()
	movement.User = domain.MovementOwner{Name: "Ana", Email: "ana@example.com"}
	m.movements = append(m.movements, *movement)
	return nil
}

func (m *mockRepository) ListMovements(_ context.Context) ([]domain.Movement, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.movements, nil
}

func validInput() CreateInput {
	return CreateInput{
		Concept: "Salario",
		Amount:  2500,
		Date:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		UserID:  "user-1",
	}
}

func TestCreateMovement(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	movement, err := service.CreateMovement(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, movement.ID)
	assert.Equal(t, "Salario", movement.Concept)
	assert.Equal(t, 2500.0, movement.Amount)
	assert.Equal(t, "user-1", movement.UserID)
	assert.Equal(t, "ana@example.com", movement.User.Email)
}

func TestCreateMovement_TrimsConcept(t *testing.T) {
	repo := &mockRepository{}
	service := NewService(repo)

	input := validInput()
	input.Concept = "  Salario  "

	movement, err := service.CreateMovement(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Salario", movement.Concept)
}

func TestCreateMovement_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"empty concept", func(in *CreateInput) { in.Concept = "" }},
		{"blank concept", func(in *CreateInput) { in.Concept = "   " }},
		{"zero date", func(in *CreateInput) { in.Date = time.Time{} }},
		{"empty user id", func(in *CreateInput) { in.UserID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			service := NewService(repo)

			input := validInput()
			tt.mutate(&input)

			_, err := service.CreateMovement(context.Background(), input)
			assert.ErrorIs(t, err, ErrMissingFields)
			// Validation fails before the store is touched
			assert.Zero(t, repo.createCalls)
		})
	}
}

// The positive-amount and no-future-date rules exist only in the client
// form validator. The server deliberately accepts these values; this
// test pins that behavior.
func TestCreateMovement_AcceptsClientRejectedValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"negative amount", func(in *CreateInput) { in.Amount = -800 }},
		{"zero amount", func(in *CreateInput) { in.Amount = 0 }},
		{"future date", func(in *CreateInput) { in.Date = time.Now().AddDate(1, 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			service := NewService(repo)

			input := validInput()
			tt.mutate(&input)

			movement, err := service.CreateMovement(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, 1, repo.createCalls)
			assert.NotEmpty(t, movement.ID)
		})
	}
}

func TestCreateMovement_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	service := NewService(&mockRepository{createErr: storeErr})

	_, err := service.CreateMovement(context.Background(), validInput())
	assert.ErrorIs(t, err, storeErr)
}

func TestCreateMovement_OwnerNotFound(t *testing.T) {
	service := NewService(&mockRepository{createErr: ErrOwnerNotFound})

	_, err := service.CreateMovement(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestListMovements(t *testing.T) {
	repo := &mockRepository{movements: []domain.Movement{
		{ID: "m1", Amount: 100},
		{ID: "m2", Amount: -50},
	}}
	service := NewService(repo)

	movements, err := service.ListMovements(context.Background())
	require.NoError(t, err)
	assert.Len(t, movements, 2)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListMovements_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	service := NewService(&mockRepository{listErr: storeErr})

	_, err := service.ListMovements(context.Background())
	assert.ErrorIs(t, err, storeErr)
}
