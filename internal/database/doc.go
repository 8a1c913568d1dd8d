// Package database provides SQLite-based storage for the conversion history.
//
// Every conversion run by the CLI is saved with its input fingerprint,
// data set sizes and outcome, so earlier runs can be listed with
// "crawlconv history". The database is a single file in the XDG data
// directory, opened through modernc.org/sqlite so no CGO is needed.
package database
