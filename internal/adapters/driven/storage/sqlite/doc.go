// Package sqlite provides SQLite-backed persistence for install attempt
// history. The database lives in the data directory and is migrated on
// open from embedded SQL files.
package sqlite
