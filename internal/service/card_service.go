package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
)

// CardUpdate holds the new content of a card. An empty Difficulty keeps the
// current one; a non-nil DeckID moves the card to that deck.
type CardUpdate struct {
	Question   string
	Answer     string
	Difficulty domain.Grade
	DeckID     *uuid.UUID
}

// CardService provides card-related operations
type CardService interface {
	// CreateCard adds a New card to an existing deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	CreateCard(
		ctx context.Context,
		deckID uuid.UUID,
		question, answer string,
		difficulty domain.Grade,
	) (*domain.Card, error)

	// GetCard retrieves a card by its ID
	GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)

	// ListCards returns the cards of a deck in creation order, optionally
	// restricted to one review status.
	ListCards(ctx context.Context, deckID uuid.UUID, status *domain.ReviewStatus) ([]*domain.Card, error)

	// UpdateCard replaces a card's content and optionally moves it to another deck.
	UpdateCard(ctx context.Context, cardID uuid.UUID, update CardUpdate) (*domain.Card, error)

	// DeleteCard removes a card.
	DeleteCard(ctx context.Context, cardID uuid.UUID) error

	// SetCardStatus changes a card's lifecycle tag. Setting New clears its
	// review history.
	SetCardStatus(ctx context.Context, cardID uuid.UUID, status domain.ReviewStatus) (*domain.Card, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	transactor store.Transactor
	decks      store.DeckStore
	cards      store.CardStore
	logger     *slog.Logger
}

var _ CardService = (*cardServiceImpl)(nil)

// NewCardService creates a new CardService
// It returns an error if any of the required dependencies are nil.
func NewCardService(
	transactor store.Transactor,
	stores store.Stores,
	logger *slog.Logger,
) (CardService, error) {
	if transactor == nil {
		return nil, domain.NewValidationError("transactor", "cannot be nil", domain.ErrValidation)
	}
	if stores.Decks == nil {
		return nil, domain.NewValidationError("stores.Decks", "cannot be nil", domain.ErrValidation)
	}
	if stores.Cards == nil {
		return nil, domain.NewValidationError("stores.Cards", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &cardServiceImpl{
		transactor: transactor,
		decks:      stores.Decks,
		cards:      stores.Cards,
		logger:     logger.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	deckID uuid.UUID,
	question, answer string,
	difficulty domain.Grade,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(deckID, question, answer, difficulty)
	if err != nil {
		log.Debug("rejected card", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		if _, err := stores.Decks.GetByID(ctx, deckID); err != nil {
			return deckLookupError(log, "create_card", deckID, err)
		}

		if err := stores.Cards.Create(ctx, card); err != nil {
			if store.IsNotFoundError(err) {
				return ErrDeckNotFound
			}
			log.Error("failed to save card",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return NewCardServiceError("create_card", "failed to save card", err)
		}
		return nil
	})
	if err != nil {
		return nil, finishTx(log, err, "create_card", NewCardServiceError)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving card", slog.String("card_id", cardID.String()))

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, cardLookupError(log, "get_card", cardID, err)
	}

	return card, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(
	ctx context.Context,
	deckID uuid.UUID,
	status *domain.ReviewStatus,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.decks.GetByID(ctx, deckID); err != nil {
		return nil, deckLookupError(log, "list_cards", deckID, err)
	}

	cards, err := s.cards.List(ctx, store.CardFilter{DeckID: &deckID, Status: status})
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}

	return cards, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	cardID uuid.UUID,
	update CardUpdate,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Card
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		card, err := stores.Cards.GetByID(ctx, cardID)
		if err != nil {
			return cardLookupError(log, "update_card", cardID, err)
		}

		if err := card.UpdateContent(update.Question, update.Answer, update.Difficulty); err != nil {
			return err
		}

		if update.DeckID != nil && *update.DeckID != card.DeckID {
			if _, err := stores.Decks.GetByID(ctx, *update.DeckID); err != nil {
				return deckLookupError(log, "update_card", *update.DeckID, err)
			}
			log.Debug("moving card",
				slog.String("card_id", cardID.String()),
				slog.String("from_deck_id", card.DeckID.String()),
				slog.String("to_deck_id", update.DeckID.String()))
			card.DeckID = *update.DeckID
		}

		if err := stores.Cards.Update(ctx, card); err != nil {
			return cardLookupError(log, "update_card", cardID, err)
		}

		updated = card
		return nil
	})
	if err != nil {
		return nil, finishTx(log, err, "update_card", NewCardServiceError)
	}

	log.Info("card updated", slog.String("card_id", cardID.String()))
	return updated, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cards.Delete(ctx, cardID); err != nil {
		return cardLookupError(log, "delete_card", cardID, err)
	}

	log.Info("card deleted", slog.String("card_id", cardID.String()))
	return nil
}

// SetCardStatus implements CardService.SetCardStatus
func (s *cardServiceImpl) SetCardStatus(
	ctx context.Context,
	cardID uuid.UUID,
	status domain.ReviewStatus,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !status.Valid() {
		log.Debug("rejected review status", slog.String("status", string(status)))
		return nil, ErrInvalidStatus
	}

	var updated *domain.Card
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		card, err := stores.Cards.GetByID(ctx, cardID)
		if err != nil {
			return cardLookupError(log, "set_card_status", cardID, err)
		}

		if err := card.SetStatus(status); err != nil {
			return err
		}

		if err := stores.Cards.Update(ctx, card); err != nil {
			return cardLookupError(log, "set_card_status", cardID, err)
		}

		updated = card
		return nil
	})
	if err != nil {
		return nil, finishTx(log, err, "set_card_status", NewCardServiceError)
	}

	log.Info("card status changed",
		slog.String("card_id", cardID.String()),
		slog.String("review_status", string(status)))
	return updated, nil
}
