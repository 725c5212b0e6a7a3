package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nerrad567/gray-logic-match/internal/match"
)

// Repository defines the interface for catalog persistence operations.
type Repository interface {
	// ListEntities returns the full catalog snapshot in stable catalog
	// order.
	ListEntities(ctx context.Context) ([]match.Entity, error)

	// ReplaceAll transactionally replaces the catalog with a new snapshot.
	// Returns the number of entities written.
	ReplaceAll(ctx context.Context, entities []match.Entity) (int64, error)

	// CountEntities returns the current catalog size.
	CountEntities(ctx context.Context) (int, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed catalog repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const entityColumns = `id, device_type, device_name, device_name_en, friendly_name,
	floor_name, floor_name_en, floor_type, level,
	room_name, room_name_en, room_type`

// ListEntities returns all entities ordered by catalog position.
func (r *SQLiteRepository) ListEntities(ctx context.Context) ([]match.Entity, error) {
	query := `SELECT ` + entityColumns + ` FROM entities ORDER BY catalog_order`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entities []match.Entity
	for rows.Next() {
		e, err := scanEntityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entity row: %w", err)
		}
		entities = append(entities, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity rows: %w", err)
	}
	return entities, nil
}

// ReplaceAll swaps the catalog for a new snapshot in a single transaction.
// The snapshot is validated first; an invalid snapshot leaves the stored
// catalog untouched.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entities []match.Entity) (int64, error) {
	if err := match.ValidateCatalog(entities); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning catalog replacement: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM entities"); err != nil {
		return 0, fmt.Errorf("clearing entities: %w", err)
	}

	insert := `INSERT INTO entities (catalog_order, ` + entityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("preparing entity insert: %w", err)
	}
	defer stmt.Close()

	for i := range entities {
		e := &entities[i]
		_, err := stmt.ExecContext(ctx, i,
			e.ID, e.DeviceType, e.DeviceName, e.DeviceNameEN, e.FriendlyName,
			e.FloorName, e.FloorNameEN, e.FloorType, nullInt(e.Level),
			e.RoomName, e.RoomNameEN, e.RoomType)
		if err != nil {
			return 0, fmt.Errorf("inserting entity %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing catalog replacement: %w", err)
	}
	return int64(len(entities)), nil
}

// CountEntities returns the number of entities in the stored catalog.
func (r *SQLiteRepository) CountEntities(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entities").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return n, nil
}

// scanEntityRow scans an entity from a Rows cursor.
func scanEntityRow(rows *sql.Rows) (*match.Entity, error) {
	var e match.Entity
	var level sql.NullInt64

	err := rows.Scan(&e.ID, &e.DeviceType, &e.DeviceName, &e.DeviceNameEN, &e.FriendlyName,
		&e.FloorName, &e.FloorNameEN, &e.FloorType, &level,
		&e.RoomName, &e.RoomNameEN, &e.RoomType)
	if err != nil {
		return nil, err
	}

	if level.Valid {
		v := int(level.Int64)
		e.Level = &v
	}
	return &e, nil
}

// nullInt converts a *int to sql.NullInt64 for the nullable level column.
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
