package ledger

import "errors"

// Domain errors for the ledger module.
var (
	ErrMissingFields = errors.New("Missing fields")
	ErrOwnerNotFound = errors.New("owner user not found")
)
