package domain

import "time"

// Role is the authorization level of a user.
type Role string

// Roles. Matching is case-sensitive everywhere.
const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// IsValid checks if the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// HasPermission returns true if the role satisfies the required role.
// ADMIN satisfies everything; USER satisfies only USER.
func (r Role) HasPermission(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// User represents a registered account.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	Image         string    `json:"image,omitempty"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DisplayName returns the user's name, falling back to email when unset.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// CallerIdentity is the authenticated caller resolved for a request.
// It is attached to the request context by the auth middleware and
// passed explicitly downward; never stored globally.
type CallerIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// RefreshToken is a persisted refresh token issued at login.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
