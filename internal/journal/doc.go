// Package journal records rebuild runs and their placement actions in a
// SQLite database.
//
// The journal is append-only diagnostics: the sorter's idempotence comes
// from skip-on-conflict linking, never from journal state, so the database
// can be deleted at any time. Busy retries and a schema version guard follow
// the usual embedded-SQLite conventions.
package journal
