package identity

import (
	"context"
	"testing"

	"github.com/fintrack/ledger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	users         map[string]*domain.User
	refreshTokens map[string]*domain.RefreshToken
	createUserErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:         make(map[string]*domain.User),
		refreshTokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if m.createUserErr != nil {
		return m.createUserErr
	}
	if _, exists := m.users[user.Email]; exists {
		return ErrEmailExists
	}
	user.ID = "user-" + user.Email
	m.users[user.Email] = user
	return nil
}

func (m *mockRepository) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) SaveRefreshToken(_ context.Context, token *domain.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockRepository) GetRefreshToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	if t, ok := m.refreshTokens[token]; ok {
		return t, nil
	}
	return nil, ErrInvalidToken
}

func (m *mockRepository) DeleteRefreshToken(_ context.Context, token string) error {
	delete(m.refreshTokens, token)
	return nil
}

func (m *mockRepository) DeleteUserRefreshTokens(_ context.Context, userID string) error {
	for token, t := range m.refreshTokens {
		if t.UserID == userID {
			delete(m.refreshTokens, token)
		}
	}
	return nil
}

// mockAuthenticator implements Authenticator for testing.
type mockAuthenticator struct {
	identity    *domain.CallerIdentity
	validateErr error
}

func (m *mockAuthenticator) GenerateTokens(_ context.Context, _ *domain.User) (*TokenPair, error) {
	return &TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *mockAuthenticator) ValidateAccessToken(_ context.Context, _ string) (*domain.CallerIdentity, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.identity, nil
}

func (m *mockAuthenticator) RefreshTokens(_ context.Context, _ string) (*TokenPair, error) {
	return &TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (m *mockAuthenticator) RevokeRefreshToken(_ context.Context, _ string) error {
	return nil
}

func TestRegister_DefaultsToAdmin(t *testing.T) {
	service := NewService(newMockRepository(), &mockAuthenticator{})

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
		Name:     "Test User",
	})
	require.NoError(t, err)

	// Every new registrant is trusted by default
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
}

func TestRegister_HashesPassword(t *testing.T) {
	service := NewService(newMockRepository(), &mockAuthenticator{})

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestRegister_NormalizesEmail(t *testing.T) {
	service := NewService(newMockRepository(), &mockAuthenticator{})

	user, err := service.Register(context.Background(), RegisterInput{
		Email:    "  Test@Example.COM ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	input := RegisterInput{Email: "dup@example.com", Password: "password123"}
	_, err := service.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	user, tokens, err := service.Login(context.Background(), LoginInput{
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockAuthenticator{})

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), LoginInput{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service := NewService(newMockRepository(), &mockAuthenticator{})

	_, _, err := service.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	// Unknown email reports the same error as a wrong password
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveSession(t *testing.T) {
	want := &domain.CallerIdentity{
		ID:    "user-1",
		Email: "ana@example.com",
		Role:  domain.RoleAdmin,
	}
	service := NewService(newMockRepository(), &mockAuthenticator{identity: want})

	identity, err := service.ResolveSession(context.Background(), "some-token")
	require.NoError(t, err)
	assert.Equal(t, want, identity)
}

func TestResolveSession_InvalidToken(t *testing.T) {
	service := NewService(newMockRepository(), &mockAuthenticator{validateErr: ErrInvalidToken})

	_, err := service.ResolveSession(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
