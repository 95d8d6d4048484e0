// Package fstree models the filesystem nodes the sorter walks.
//
// Entry wraps a path with its directory flag and a lazily-computed, sorted
// child list so classification and rebuild code share one deterministic view
// of the tree without re-statting paths.
package fstree
