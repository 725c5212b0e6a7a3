// Package database provides SQLite database connectivity for the entity
// catalog.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations embedded into the binary
//   - Connection lifecycle management
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows catalog reads while a sync is writing
//   - Busy timeout prevents lock contention errors
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migrations are additive-only; each migration file has both .up.sql and
// .down.sql variants (see the migrations package).
package database
