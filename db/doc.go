// Package db provides helpers for connecting to the Postgres database in which
// rejected requests are recorded
package db
