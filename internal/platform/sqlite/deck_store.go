package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
	"gorm.io/gorm"
)

// DeckStore implements store.DeckStore with gorm.
type DeckStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewDeckStore creates a DeckStore on db, which may be a transaction handle.
func NewDeckStore(db *gorm.DB, logger *slog.Logger) *DeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

var _ store.DeckStore = (*DeckStore)(nil)

// Create implements store.DeckStore.Create
func (s *DeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.db.WithContext(ctx).Create(deckFromDomain(deck)).Error; err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return mapError(err)
	}

	log.Info("deck created", slog.String("deck_id", deck.ID.String()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *DeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	var m deckModel
	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrDeckNotFound
		}
		return nil, mapError(err)
	}
	return m.toDomain()
}

// List implements store.DeckStore.List
func (s *DeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	var models []deckModel
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, mapError(err)
	}

	decks := make([]*domain.Deck, 0, len(models))
	for i := range models {
		d, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	return decks, nil
}

// Update implements store.DeckStore.Update
func (s *DeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result := s.db.WithContext(ctx).
		Model(&deckModel{}).
		Where("id = ?", deck.ID.String()).
		Updates(map[string]any{
			"name":        deck.Name,
			"description": deck.Description,
			"updated_at":  deck.UpdatedAt.UTC(),
		})
	return checkResult(result, store.ErrDeckNotFound)
}

// Delete implements store.DeckStore.Delete
// SQLite does not enforce the cascade here, so the deck's cards are removed
// in the same transaction.
func (s *DeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", id.String()).Delete(&cardModel{}).Error; err != nil {
			return mapError(err)
		}
		return checkResult(tx.Where("id = ?", id.String()).Delete(&deckModel{}), store.ErrDeckNotFound)
	})
	if err != nil {
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

// TouchLastStudied implements store.DeckStore.TouchLastStudied
func (s *DeckStore) TouchLastStudied(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&deckModel{}).
		Where("id = ?", id.String()).
		UpdateColumn("last_studied_at", at.UTC())
	return checkResult(result, store.ErrDeckNotFound)
}
