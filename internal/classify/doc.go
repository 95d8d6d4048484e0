// Package classify assigns a semantic media category to filesystem entries.
//
// A single ordered list of predicates is evaluated per entry, first match
// wins: featurette folder names, then episode grouping, season grouping,
// show detection, and finally the movie/subtitle/music catch-alls. Derived
// tags (defaulted season, detected episode) are surfaced on the Result so
// the traversal can merge them into its context.
package classify
