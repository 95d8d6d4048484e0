// Package linker performs the filesystem side effects that place classified
// media into the library: hard links by default, renames in move mode, with
// idempotent folder creation, per-file container folders, one-level
// directory flattening, and skip-on-conflict semantics. Dry-run disables
// every mutation while keeping the logged intents identical.
package linker
