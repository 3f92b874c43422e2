//go:build integration

package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/fintrack/ledger/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// userRecord mirrors the user object returned by the API.
type userRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// movementRecord mirrors the movement object returned by the API.
type movementRecord struct {
	ID      string  `json:"id"`
	Concept string  `json:"concept"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	UserID  string  `json:"userId"`
	User    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

const testPassword = "password-123"

func randomEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

// registerTestUser registers a fresh account and returns its record.
// Registration grants the ADMIN role.
func registerTestUser(t *testing.T, client *testutil.Client, name string) userRecord {
	t.Helper()

	resp, err := client.POST("/api/v1/auth/register", map[string]string{
		"email":    randomEmail("user"),
		"password": testPassword,
		"name":     name,
	})
	require.NoError(t, err)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed: status=%d body=%s", resp.StatusCode, testutil.ReadBody(t, resp))
	}

	var result struct {
		User userRecord `json:"user"`
	}
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.User.ID)
	return result.User
}

// registerAdmin registers an account and logs the client in as it.
func registerAdmin(t *testing.T, client *testutil.Client, name string) userRecord {
	t.Helper()
	user := registerTestUser(t, client, name)
	client.LoginAs(t, user.Email, testPassword)
	return user
}

// demoteToUser flips an account to the USER role directly in the database.
// Registration always grants ADMIN, so restricted-role scenarios set this up
// out of band.
func demoteToUser(t *testing.T, userID string) {
	t.Helper()

	tag, err := testDB.Exec(context.Background(),
		`UPDATE users SET role = 'USER' WHERE id = $1`, userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

// clearMovements empties the movements table so aggregate assertions
// start from a known state.
func clearMovements(t *testing.T) {
	t.Helper()

	_, err := testDB.Exec(context.Background(), `TRUNCATE movements`)
	require.NoError(t, err)
}

// createTestMovement records a movement owned by userID and returns it.
func createTestMovement(t *testing.T, client *testutil.Client, concept string, amount float64, date, userID string) movementRecord {
	t.Helper()

	resp, err := client.POST("/api/v1/movements", map[string]interface{}{
		"concept": concept,
		"amount":  amount,
		"date":    date,
		"userId":  userID,
	})
	require.NoError(t, err)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create movement failed: status=%d body=%s", resp.StatusCode, testutil.ReadBody(t, resp))
	}

	var result struct {
		Movement movementRecord `json:"movement"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Movement
}
