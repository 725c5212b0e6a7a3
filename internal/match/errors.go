package match

import "errors"

// Domain errors for the match package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, match.ErrDuplicateEntityID) {
//	    // reject the catalog snapshot
//	}
var (
	// ErrMissingEntityID is returned when a catalog entity has an empty ID.
	ErrMissingEntityID = errors.New("match: entity with empty id")

	// ErrDuplicateEntityID is returned when two catalog entities share an ID.
	// A structurally invalid catalog is distinct from a zero-result match;
	// the latter is never an error.
	ErrDuplicateEntityID = errors.New("match: duplicate entity id in catalog")

	// ErrInvalidAliasConfig is returned when an alias table has a canonical
	// key with an empty variant set.
	ErrInvalidAliasConfig = errors.New("match: invalid alias config")

	// ErrInvalidParams is returned when weights or thresholds are out of range.
	ErrInvalidParams = errors.New("match: invalid params")
)
