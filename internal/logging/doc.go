// Package logging assembles the structured slog loggers used across
// mediasort.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small attribute wrappers so command and sorter code
// emit data with the same shape. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
