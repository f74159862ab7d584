package service_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/mocks"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	decks *mocks.MockDeckStore
	cards *mocks.MockCardStore
	tx    *mocks.MockTransactor
	deck  service.DeckService
	card  service.CardService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		decks: new(mocks.MockDeckStore),
		cards: new(mocks.MockCardStore),
	}
	stores := store.Stores{Decks: f.decks, Cards: f.cards}
	f.tx = mocks.NewMockTransactor(stores)

	var err error
	f.deck, err = service.NewDeckService(f.tx, stores, discardLogger())
	require.NoError(t, err)
	f.card, err = service.NewCardService(f.tx, stores, discardLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		f.decks.AssertExpectations(t)
		f.cards.AssertExpectations(t)
	})
	return f
}

func mustDeck(t *testing.T, name string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(name, "")
	require.NoError(t, err)
	return deck
}

func mustCard(t *testing.T, deckID uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, "2 + 2", "4", "")
	require.NoError(t, err)
	return card
}
