package directory

import "errors"

// Domain errors for the directory module.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("role must be ADMIN or USER")
)
