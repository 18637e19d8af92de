// Package sqlite provides the SQLite-backed interaction log.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are tracked in schema_migrations,
// so opening an existing database is idempotent.
//
// # Data Location
//
// By default, the database is stored at ~/.tutor/data/interactions.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode
// with a busy timeout, and every append is a single INSERT.
package sqlite
