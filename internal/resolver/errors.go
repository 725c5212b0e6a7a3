package resolver

import "errors"

// Domain-specific errors for request resolution.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidRequest is returned when a match request payload cannot be
	// decoded or contains no device queries.
	ErrInvalidRequest = errors.New("resolver: invalid match request")

	// ErrInvalidSnapshot is returned when a catalog snapshot payload cannot
	// be decoded.
	ErrInvalidSnapshot = errors.New("resolver: invalid catalog snapshot")

	// ErrCatalogUnavailable is returned when the catalog repository cannot
	// produce a snapshot for a match request.
	ErrCatalogUnavailable = errors.New("resolver: catalog unavailable")
)
