package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/store"
)

// Transactor implements store.Transactor on a *sql.DB.
type Transactor struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor for db.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

var _ store.Transactor = (*Transactor)(nil)

// WithinTx runs fn with deck and card stores bound to a single transaction.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores store.Stores) error) error {
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Decks: NewPostgresDeckStore(tx, t.logger),
			Cards: NewPostgresCardStore(tx, t.logger),
		})
	})
}

// NewStores returns deck and card stores bound to db outside any transaction.
func NewStores(db *sql.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Decks: NewPostgresDeckStore(db, logger),
		Cards: NewPostgresCardStore(db, logger),
	}
}
