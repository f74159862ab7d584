package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
	"gorm.io/gorm"
)

// CardStore implements store.CardStore with gorm.
type CardStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewCardStore creates a CardStore on db, which may be a transaction handle.
func NewCardStore(db *gorm.DB, logger *slog.Logger) *CardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

var _ store.CardStore = (*CardStore)(nil)

// Create implements store.CardStore.Create
func (s *CardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.ensureDeck(ctx, card.DeckID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(cardFromDomain(card)).Error; err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return mapError(err)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()))
	return nil
}

// GetByID implements store.CardStore.GetByID
func (s *CardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	var m cardModel
	if err := s.db.WithContext(ctx).Where("id = ?", id.String()).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCardNotFound
		}
		return nil, mapError(err)
	}
	return m.toDomain()
}

// List implements store.CardStore.List
func (s *CardStore) List(ctx context.Context, filter store.CardFilter) ([]*domain.Card, error) {
	q := s.db.WithContext(ctx).Model(&cardModel{})
	if filter.DeckID != nil {
		q = q.Where("deck_id = ?", filter.DeckID.String())
	}
	if filter.Status != nil {
		q = q.Where("review_status = ?", string(*filter.Status))
	}

	var models []cardModel
	if err := q.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, mapError(err)
	}

	cards := make([]*domain.Card, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// Update implements store.CardStore.Update
func (s *CardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.ensureDeck(ctx, card.DeckID); err != nil {
		return err
	}

	m := cardFromDomain(card)
	result := s.db.WithContext(ctx).
		Model(&cardModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"deck_id":          m.DeckID,
			"question":         m.Question,
			"answer":           m.Answer,
			"difficulty":       m.Difficulty,
			"review_status":    m.ReviewStatus,
			"last_reviewed_at": m.LastReviewedAt,
			"next_review_at":   m.NextReviewAt,
			"updated_at":       m.UpdatedAt,
		})
	return checkResult(result, store.ErrCardNotFound)
}

// Delete implements store.CardStore.Delete
func (s *CardStore) Delete(ctx context.Context, id uuid.UUID) error {
	return checkResult(
		s.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&cardModel{}),
		store.ErrCardNotFound,
	)
}

func (s *CardStore) ensureDeck(ctx context.Context, deckID uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&deckModel{}).Where("id = ?", deckID.String()).Count(&n).Error; err != nil {
		return mapError(err)
	}
	if n == 0 {
		return store.ErrDeckNotFound
	}
	return nil
}
