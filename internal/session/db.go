// Package session holds per-run browser state: open tabs and the visit log.
// The store is a sqlite database opened in memory, so nothing outlives the
// process; it exists to give coordinators and suggestion ranking one
// queryable view of the session.
package session

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the in-memory session database and applies the schema.
func Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // a second conn would see a different :memory: db
	db.SetConnMaxLifetime(0)
	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn in a transaction.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now returns UTC time truncated to seconds (consistent with sqlite default).
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
