// Package main hosts the mediasort CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into library
// rebuilds: sorting single trees, batching a staging directory, previewing
// placements, and browsing the run journal. It centralizes configuration
// resolution, library locking, and structured logging setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
