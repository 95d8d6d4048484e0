// Package rebuild drives one library rebuild: a depth-first walk of an
// input tree that classifies every node, threads ancestor tags through the
// recursion, and places movies, episodes, featurettes, and music through
// the linker. Failures on individual nodes are logged and skipped so one
// unreadable entry never aborts the rest of the tree.
package rebuild
