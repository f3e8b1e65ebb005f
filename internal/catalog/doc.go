// Package catalog holds the static command reference: the flattened list of
// documented bot commands, the search/category filter over it, and the summary
// counters shown next to the results.
//
// Everything except Load is pure and safe to call on every keystroke.
package catalog
