// Package sqlite implements the store interfaces with gorm on SQLite.
// It is meant for local single-user runs and for tests; the schema is
// created with gorm's AutoMigrate.
package sqlite
