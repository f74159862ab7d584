package app

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/phrazzld/learning-tracker/internal/domain/srs"
	"github.com/phrazzld/learning-tracker/internal/events"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
)

// Services holds the application services built on a Backend.
type Services struct {
	Decks   service.DeckService
	Cards   service.CardService
	Reviews card_review.CardReviewService
	Emitter *events.InMemoryEventEmitter
}

// NewServices wires the review scheduler, the event emitter and the deck,
// card and review services. Reviews update the deck's last-studied time
// through a card.reviewed handler.
func NewServices(
	backend *Backend,
	review config.ReviewConfig,
	logger *slog.Logger,
	opts ...card_review.Option,
) (*Services, error) {
	srsService := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		EasyIntervalDays:   review.EasyIntervalDays,
		MediumIntervalDays: review.MediumIntervalDays,
		HardIntervalDays:   review.HardIntervalDays,
	}))

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.Subscribe(events.CardReviewed, service.NewDeckActivityHandler(backend.Stores.Decks, logger))

	decks, err := service.NewDeckService(backend.Transactor, backend.Stores, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	cards, err := service.NewCardService(backend.Transactor, backend.Stores, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	opts = append([]card_review.Option{card_review.WithEventEmitter(emitter)}, opts...)
	reviews := card_review.NewCardReviewService(backend.Transactor, backend.Stores, srsService, logger, opts...)

	return &Services{
		Decks:   decks,
		Cards:   cards,
		Reviews: reviews,
		Emitter: emitter,
	}, nil
}
