// Package inventory persists the entity catalog that matching runs against.
//
// The catalog is a flat snapshot of every addressable device the upstream
// integrations have discovered, together with the enriched English names
// produced by the translation pipeline. Matching never reads the database
// directly: callers load a snapshot with ListEntities and hand the slice to
// the match engine, so a match request observes one consistent catalog even
// while a sync replaces the table underneath it.
//
// Snapshot replacement (ReplaceAll) is transactional — readers see either
// the old catalog or the new one, never a half-written mix. Row order is
// preserved across replacement; the matcher uses catalog order to break
// score ties deterministically.
package inventory
