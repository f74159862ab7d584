// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic. Two backends implement them: a PostgreSQL
// store built on database/sql and an SQLite store built on gorm.
package store
