//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/fintrack/ledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	client := newTestClient(t)

	email := randomEmail("register")
	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"email":    email,
		"password": testPassword,
		"name":     "Ana García",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		User userRecord `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &result)

	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, email, result.User.Email)
	assert.Equal(t, "Ana García", result.User.Name)
	// New registrants are trusted with the full dashboard
	assert.Equal(t, "ADMIN", result.User.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	client := newTestClient(t)

	email := randomEmail("dup")
	payload := map[string]string{"email": email, "password": testPassword}

	resp, err := client.POST("/api/v1/auth/register", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.POST("/api/v1/auth/register", payload)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRegister_InvalidPayload(t *testing.T) {
	client := newTestClient(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing email", map[string]string{"password": testPassword}},
		{"bad email", map[string]string{"email": "not-an-email", "password": testPassword}},
		{"short password", map[string]string{"email": randomEmail("short"), "password": "abc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := client.POST("/api/v1/auth/register", tc.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			_ = resp.Body.Close()
		})
	}
}

func TestLogin(t *testing.T) {
	client := newTestClient(t)
	user := registerTestUser(t, client, "Login User")

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		User   userRecord `json:"user"`
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutil.DecodeJSON(t, resp, &result)

	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	client := newTestClient(t)
	user := registerTestUser(t, client, "Wrong Password")

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email":    user.Email,
		"password": "definitely-wrong",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestRefresh_RotatesToken(t *testing.T) {
	client := newTestClient(t)
	user := registerTestUser(t, client, "Refresher")

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Tokens struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutil.DecodeJSON(t, resp, &login)

	resp, err = client.POST("/api/v1/auth/refresh", map[string]string{
		"refreshToken": login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		Tokens struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutil.DecodeJSON(t, resp, &refreshed)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)

	// The consumed refresh token is dead.
	resp, err = client.POST("/api/v1/auth/refresh", map[string]string{
		"refreshToken": login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	client := newTestClient(t)
	user := registerTestUser(t, client, "Logout User")

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email":    user.Email,
		"password": testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Tokens struct {
			RefreshToken string `json:"refreshToken"`
		} `json:"tokens"`
	}
	testutil.DecodeJSON(t, resp, &login)

	resp, err = client.POST("/api/v1/auth/logout", map[string]string{
		"refreshToken": login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = client.POST("/api/v1/auth/refresh", map[string]string{
		"refreshToken": login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestMe(t *testing.T) {
	client := newTestClient(t)
	user := registerAdmin(t, client, "Me Myself")

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		User userRecord `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Equal(t, user.Email, result.User.Email)
}

func TestMe_RequiresAuth(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}
