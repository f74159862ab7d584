package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/events"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/store"
)

// DeckActivityHandler records the last study time of a deck whenever one of
// its cards is reviewed.
type DeckActivityHandler struct {
	decks  store.DeckStore
	logger *slog.Logger
}

var _ events.EventHandler = (*DeckActivityHandler)(nil)

// NewDeckActivityHandler creates a handler that writes through decks.
func NewDeckActivityHandler(decks store.DeckStore, logger *slog.Logger) *DeckActivityHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckActivityHandler{
		decks:  decks,
		logger: logger.With(slog.String("component", "deck_activity_handler")),
	}
}

// HandleEvent implements events.EventHandler. Events other than
// card.reviewed are ignored.
func (h *DeckActivityHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	if event.Type != events.CardReviewed {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, h.logger)

	var payload events.CardReviewedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", event.Type, err)
	}

	if err := h.decks.TouchLastStudied(ctx, payload.DeckID, payload.ReviewedAt); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("reviewed card's deck no longer exists",
				slog.String("deck_id", payload.DeckID.String()))
			return nil
		}
		return fmt.Errorf("record deck activity: %w", err)
	}

	log.Debug("recorded deck activity",
		slog.String("deck_id", payload.DeckID.String()),
		slog.Time("studied_at", payload.ReviewedAt))
	return nil
}
