package card_review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/domain/srs"
	"github.com/phrazzld/learning-tracker/internal/events"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/redact"
	"github.com/phrazzld/learning-tracker/internal/store"
)

// Verify interface compliance at compile time
var _ CardReviewService = (*cardReviewServiceImpl)(nil)

// Clock returns the current instant.
type Clock func() time.Time

type cardReviewServiceImpl struct {
	transactor store.Transactor
	stores     store.Stores
	srsService srs.Service
	emitter    events.EventEmitter
	clock      Clock
	logger     *slog.Logger
}

// Option configures optional collaborators of the service.
type Option func(*cardReviewServiceImpl)

// WithEventEmitter sets the emitter that receives card.reviewed events.
func WithEventEmitter(emitter events.EventEmitter) Option {
	return func(s *cardReviewServiceImpl) {
		s.emitter = emitter
	}
}

// WithClock overrides the time source used for reviews.
func WithClock(clock Clock) Option {
	return func(s *cardReviewServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewCardReviewService creates a new CardReviewService implementation.
func NewCardReviewService(
	transactor store.Transactor,
	stores store.Stores,
	srsService srs.Service,
	logger *slog.Logger,
	opts ...Option,
) CardReviewService {
	if transactor == nil {
		panic("transactor cannot be nil")
	}
	if stores.Cards == nil || stores.Decks == nil {
		panic("stores cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &cardReviewServiceImpl{
		transactor: transactor,
		stores:     stores,
		srsService: srsService,
		clock:      func() time.Time { return time.Now().UTC() },
		logger:     logger.With(slog.String("component", "card_review_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordReview implements CardReviewService.RecordReview.
func (s *cardReviewServiceImpl) RecordReview(
	ctx context.Context,
	cardID uuid.UUID,
	grade domain.Grade,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("recording review",
		slog.String("card_id", cardID.String()),
		slog.String("grade", string(grade)))

	if !grade.Valid() {
		log.Warn("invalid review grade",
			slog.String("card_id", cardID.String()),
			slog.String("grade", string(grade)))
		return nil, ErrInvalidGrade
	}

	now := s.clock()
	var reviewed *domain.Card
	err := s.transactor.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		card, err := stores.Cards.GetByID(ctx, cardID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return NewRecordReviewError("failed to load card", err)
		}

		updated, err := s.srsService.RecordReview(card, grade, now)
		if err != nil {
			return NewRecordReviewError("failed to schedule card", err)
		}

		if err := stores.Cards.Update(ctx, updated); err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return NewRecordReviewError("failed to save card", err)
		}

		reviewed = updated
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			log.Warn("card not found for review", slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) {
			err = NewRecordReviewError("transaction failed", err)
		}
		log.Error("failed to record review",
			redact.ErrorAttr(err),
			slog.String("card_id", cardID.String()))
		return nil, err
	}

	s.emitReviewed(ctx, log, reviewed, grade, now)

	log.Debug("review recorded",
		slog.String("card_id", reviewed.ID.String()),
		slog.String("review_status", string(reviewed.ReviewStatus)),
		slog.Time("next_review_at", *reviewed.NextReviewAt))

	return reviewed, nil
}

// emitReviewed publishes a card.reviewed event. Failures are logged only; the
// review itself has already been committed.
func (s *cardReviewServiceImpl) emitReviewed(
	ctx context.Context,
	log *slog.Logger,
	card *domain.Card,
	grade domain.Grade,
	at time.Time,
) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewCardReviewedEvent(events.CardReviewedPayload{
		CardID:     card.ID,
		DeckID:     card.DeckID,
		Grade:      string(grade),
		ReviewedAt: at,
	})
	if err != nil {
		log.Error("failed to build review event",
			redact.ErrorAttr(err),
			slog.String("card_id", card.ID.String()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("review event handler failed",
			redact.ErrorAttr(err),
			slog.String("card_id", card.ID.String()),
			slog.String("event_id", event.ID.String()))
	}
}

// GetReviewQueue implements CardReviewService.GetReviewQueue.
func (s *cardReviewServiceImpl) GetReviewQueue(
	ctx context.Context,
	deckID *uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit < 1 {
		log.Warn("invalid review queue limit", slog.Int("limit", limit))
		return nil, ErrInvalidLimit
	}

	filter := store.CardFilter{}
	if deckID != nil {
		if _, err := s.stores.Decks.GetByID(ctx, *deckID); err != nil {
			if store.IsNotFoundError(err) {
				log.Debug("deck not found for review queue", slog.String("deck_id", deckID.String()))
				return nil, ErrDeckNotFound
			}
			log.Error("failed to load deck for review queue",
				redact.ErrorAttr(err),
				slog.String("deck_id", deckID.String()))
			return nil, NewGetReviewQueueError("failed to load deck", err)
		}
		filter.DeckID = deckID
	}

	cards, err := s.stores.Cards.List(ctx, filter)
	if err != nil {
		log.Error("failed to list cards for review queue", redact.ErrorAttr(err))
		return nil, NewGetReviewQueueError("failed to list cards", err)
	}

	queue, err := s.srsService.BuildQueue(cards, limit)
	if err != nil {
		if errors.Is(err, srs.ErrInvalidLimit) {
			return nil, ErrInvalidLimit
		}
		return nil, NewGetReviewQueueError("failed to order cards", err)
	}

	log.Debug("built review queue",
		slog.Int("candidates", len(cards)),
		slog.Int("queued", len(queue)),
		slog.Int("limit", limit))

	return queue, nil
}
