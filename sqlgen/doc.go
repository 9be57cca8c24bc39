// Package sqlgen renders filter expression trees as SQL WHERE clauses.
//
// A Renderer pairs a tree with a Dialect. Dialects are override tables: the
// ANSI dialect is the baseline, and SQLite and Athena replace only the
// functions and literal spellings they disagree on. Constructs a dialect
// cannot express fail with UnsupportedConstructError rather than producing
// SQL that looks right and breaks at execution.
package sqlgen
