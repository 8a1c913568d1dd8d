// Package model defines the core data structures shared across crawlconv.
//
// This package contains the following main types:
//   - FileKind: which kind of crawler output is being converted
//   - Format: the output format written by a report writer
//   - Conversion: the summary of one conversion run
//
// Design decision: We keep this package free of dependencies on the other
// internal packages. The table, report, pipeline and database packages all
// need these types, so centralizing them prevents import cycles.
//
// Conversion is serializable to JSON for the history database and the
// `history --json` output.
package model
