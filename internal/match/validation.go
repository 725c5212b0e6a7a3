package match

import "fmt"

// ValidateCatalog rejects structurally invalid catalog snapshots before any
// matching runs: every entity must carry a unique, non-empty ID.
//
// A valid catalog that simply matches nothing is not an error; callers get
// an empty RankedOutcome instead.
func ValidateCatalog(catalog []Entity) error {
	seen := make(map[string]int, len(catalog))
	for i := range catalog {
		id := catalog[i].ID
		if id == "" {
			return fmt.Errorf("%w: catalog position %d", ErrMissingEntityID, i)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateEntityID, id, prev, i)
		}
		seen[id] = i
	}
	return nil
}
