package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
)

// DeckWithStats is a deck together with its study statistics.
type DeckWithStats struct {
	*domain.Deck
	Stats domain.DeckStats `json:"stats"`
}

// DeckDetail is a deck with its statistics and all of its cards in creation
// order.
type DeckDetail struct {
	DeckWithStats
	Cards []*domain.Card `json:"cards"`
}

// DeckService provides deck-related operations
type DeckService interface {
	// CreateDeck creates a new, empty deck.
	CreateDeck(ctx context.Context, name, description string) (*domain.Deck, error)

	// GetDeck returns the deck with its cards and statistics.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, deckID uuid.UUID) (*DeckDetail, error)

	// ListDecks returns every deck with its statistics.
	ListDecks(ctx context.Context) ([]DeckWithStats, error)

	// UpdateDeck renames a deck and replaces its description.
	UpdateDeck(ctx context.Context, deckID uuid.UUID, name, description string) (*domain.Deck, error)

	// DeleteDeck removes a deck and all of its cards.
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	transactor store.Transactor
	decks      store.DeckStore
	cards      store.CardStore
	logger     *slog.Logger
}

var _ DeckService = (*deckServiceImpl)(nil)

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(
	transactor store.Transactor,
	stores store.Stores,
	logger *slog.Logger,
) (DeckService, error) {
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

	return &deckServiceImpl{
		transactor: transactor,
		decks:      stores.Decks,
		cards:      stores.Cards,
		logger:     logger.With(slog.String("component", "deck_service")),
	}, nil
}

// CreateDeck implements DeckService.CreateDeck
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	name, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(name, description)
	if err != nil {
		log.Debug("rejected deck", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.decks.Create(ctx, deck); err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return nil, NewDeckServiceError("create_deck", "failed to save deck", err)
	}

	log.Info("deck created", slog.String("deck_id", deck.ID.String()))
	return deck, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID uuid.UUID) (*DeckDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, deckLookupError(log, "get_deck", deckID, err)
	}

	cards, err := s.cards.List(ctx, store.CardFilter{DeckID: &deckID})
	if err != nil {
		log.Error("failed to list deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError("get_deck", "failed to list cards", err)
	}

	return &DeckDetail{
		DeckWithStats: DeckWithStats{Deck: deck, Stats: domain.ComputeDeckStats(cards)},
		Cards:         cards,
	}, nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]DeckWithStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decks, err := s.decks.List(ctx)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}

	cards, err := s.cards.List(ctx, store.CardFilter{})
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("list_decks", "failed to list cards", err)
	}

	byDeck := make(map[uuid.UUID][]*domain.Card, len(decks))
	for _, c := range cards {
		byDeck[c.DeckID] = append(byDeck[c.DeckID], c)
	}

	result := make([]DeckWithStats, 0, len(decks))
	for _, d := range decks {
		result = append(result, DeckWithStats{Deck: d, Stats: domain.ComputeDeckStats(byDeck[d.ID])})
	}

	log.Debug("listed decks", slog.Int("deck_count", len(result)), slog.Int("card_count", len(cards)))
	return result, nil
}

// UpdateDeck implements DeckService.UpdateDeck
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	deckID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Deck
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		deck, err := stores.Decks.GetByID(ctx, deckID)
		if err != nil {
			return deckLookupError(log, "update_deck", deckID, err)
		}

		if err := deck.Rename(name, description); err != nil {
			return err
		}

		if err := stores.Decks.Update(ctx, deck); err != nil {
			return deckLookupError(log, "update_deck", deckID, err)
		}

		updated = deck
		return nil
	})
	if err != nil {
		return nil, finishTx(log, err, "update_deck", NewDeckServiceError)
	}

	log.Info("deck updated", slog.String("deck_id", deckID.String()))
	return updated, nil
}

// DeleteDeck implements DeckService.DeleteDeck
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.decks.Delete(ctx, deckID); err != nil {
		return deckLookupError(log, "delete_deck", deckID, err)
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

// deckLookupError maps a store error for a deck to ErrDeckNotFound or a
// ServiceError.
func deckLookupError(log *slog.Logger, op string, deckID uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		log.Debug("deck not found", slog.String("deck_id", deckID.String()), slog.String("operation", op))
		return ErrDeckNotFound
	}
	log.Error("deck store operation failed",
		slog.String("error", err.Error()),
		slog.String("deck_id", deckID.String()),
		slog.String("operation", op))
	return NewDeckServiceError(op, "store operation failed", err)
}

// cardLookupError maps a store error for a card to ErrCardNotFound or a
// ServiceError.
func cardLookupError(log *slog.Logger, op string, cardID uuid.UUID, err error) error {
	if store.IsNotFoundError(err) {
		log.Debug("card not found", slog.String("card_id", cardID.String()), slog.String("operation", op))
		return ErrCardNotFound
	}
	log.Error("card store operation failed",
		slog.String("error", err.Error()),
		slog.String("card_id", cardID.String()),
		slog.String("operation", op))
	return NewCardServiceError(op, "store operation failed", err)
}

// finishTx returns err unchanged when it is already a service sentinel, a
// ServiceError or a domain validation error, and wraps anything else.
func finishTx(
	log *slog.Logger,
	err error,
	op string,
	wrap func(operation, message string, err error) *ServiceError,
) error {
	var svcErr *ServiceError
	switch {
	case errors.Is(err, ErrDeckNotFound),
		errors.Is(err, ErrCardNotFound),
		errors.Is(err, ErrInvalidStatus),
		errors.As(err, &svcErr),
		isDomainError(err):
		return err
	}

	log.Error("transaction failed", slog.String("error", err.Error()), slog.String("operation", op))
	return wrap(op, "transaction failed", err)
}

// isDomainError reports whether err is a validation failure raised by the
// domain model.
func isDomainError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrInvalidGrade,
		domain.ErrInvalidReviewStatus,
		domain.ErrDeckNameEmpty,
		domain.ErrDeckNameTooLong,
		domain.ErrCardQuestionEmpty,
		domain.ErrCardAnswerEmpty,
		domain.ErrCardNewWithHistory,
		domain.ErrCardScheduleOrder,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
