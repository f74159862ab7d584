package sqlite

import (
	"context"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
	"gorm.io/gorm"
)

// Transactor implements store.Transactor with gorm transactions.
type Transactor struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewTransactor creates a Transactor for db.
func NewTransactor(db *gorm.DB, logger *slog.Logger) *Transactor {
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
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, store.Stores{
			Decks: NewDeckStore(tx, t.logger),
			Cards: NewCardStore(tx, t.logger),
		})
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, t.logger).Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
	}
	return err
}

// NewStores returns deck and card stores bound to db outside any transaction.
func NewStores(db *gorm.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Decks: NewDeckStore(db, logger),
		Cards: NewCardStore(db, logger),
	}
}
