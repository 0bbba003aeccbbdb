// Package database manages the SQLite connection for devreg.
//
// It owns connection setup (WAL mode, busy timeout, single-writer pool,
// file permissions), health checks, and the embedded-SQL migration runner.
// The registry never sees driver-level details; it receives an open *sql.DB
// after migrations have been applied.
//
// Startup is fail-fast: if the database cannot be opened or migrated, the
// caller is expected to abort rather than serve requests against a broken
// store.
package database
