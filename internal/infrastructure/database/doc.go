// Package database provides SQLite connectivity for the entity store.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Additive-only schema migrations from an embedded filesystem
//   - Connection lifecycle and health checks
//
// All queries use parameterised statements and the database file is
// created with 0600 permissions.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
