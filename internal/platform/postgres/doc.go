// Package postgres implements the store interfaces on PostgreSQL using
// database/sql with the pgx stdlib driver. The schema is managed by goose
// migrations embedded in the package.
package postgres
