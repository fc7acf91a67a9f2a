// Package database opens and maintains the SQLite facilities store.
//
// It owns two concerns: the connection itself (WAL journaling, foreign-key
// enforcement, busy timeout, a single-writer pool) and the embedded schema
// migrations that create the directory, asset, inspection and maintenance
// tables. Every repository in internal/ runs against the *sql.DB handle
// this package hands out.
//
// Typical startup sequence, as run by cmd/campuscore:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, ...})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
//
// Migrations are versioned YYYYMMDD_HHMMSS_name.up.sql / .down.sql pairs
// embedded by the migrations package. They only ever add to the schema;
// inspection reports and maintenance history are append-only records, so
// existing columns are never dropped or renamed.
//
// The database file is chmodded 0600 because it contains staff contact
// details and password hashes.
package database
