package inventory

import "errors"

// Sentinel errors for inventory operations.
var (
	// ErrInvalidSnapshot indicates a catalog snapshot that failed
	// structural validation and was not written.
	ErrInvalidSnapshot = errors.New("inventory: invalid catalog snapshot")
)
