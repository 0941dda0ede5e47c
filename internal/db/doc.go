// Package db records analysis runs in a local sqlite database.
//
// The schema lives in migrations/ and is embedded into the binary;
// OpenDB applies any pending migrations before returning.
package db
