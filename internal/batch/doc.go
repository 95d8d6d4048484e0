// Package batch executes library rebuilds as journaled runs. A driver owns
// the layout, link mode, and journal store; each input root becomes an
// independent run with its own identifier, and batch mode walks a staging
// directory rebuilding every child while isolating failures to the entry
// that caused them.
package batch
