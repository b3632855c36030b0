// Package database provides SQLite-based storage for analysis results.
//
// This package implements the ResultDB, which stores one row per
// analysis run: run metadata plus the serialized report and its
// relation summary. Historical runs over the same dump can then be
// compared without re-analyzing.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
