// Package naming extracts structured tags from loosely-named media entries.
//
// A fixed, ordered set of pattern rules recognizes season, episode, part,
// year, resolution, tracker, and extension markers in a single entry name;
// everything before the earliest marker becomes the normalized title.
// Results are combined into a Tags record with optional fields so absent
// attributes stay absent instead of degrading to zero values.
package naming
