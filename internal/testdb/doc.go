// Package testdb provides PostgreSQL helpers for integration tests. Tests
// using it skip when no database URL is configured.
package testdb
