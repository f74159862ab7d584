package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func mustDeck(t *testing.T, stores store.Stores, name string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(name, "")
	require.NoError(t, err)
	require.NoError(t, stores.Decks.Create(context.Background(), deck))
	return deck
}

func mustCard(t *testing.T, stores store.Stores, deckID uuid.UUID, question string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, question, "answer", "")
	require.NoError(t, err)
	require.NoError(t, stores.Cards.Create(context.Background(), card))
	return card
}

func TestDeckStore(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t), nil)

	deck := mustDeck(t, stores, "Go")
	mustDeck(t, stores, "Rust")

	got, err := stores.Decks.GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Name)
	assert.Nil(t, got.LastStudiedAt)

	_, err = stores.Decks.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	decks, err := stores.Decks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, decks, 2)

	require.NoError(t, deck.Rename("Go idioms", "errors and interfaces"))
	require.NoError(t, stores.Decks.Update(ctx, deck))
	got, err = stores.Decks.GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go idioms", got.Name)
	assert.Equal(t, "errors and interfaces", got.Description)

	studied := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, stores.Decks.TouchLastStudied(ctx, deck.ID, studied))
	got, err = stores.Decks.GetByID(ctx, deck.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastStudiedAt)
	assert.True(t, studied.Equal(*got.LastStudiedAt))

	assert.ErrorIs(t, stores.Decks.TouchLastStudied(ctx, uuid.New(), studied), store.ErrDeckNotFound)
	assert.ErrorIs(t, stores.Decks.Update(ctx, &domain.Deck{ID: uuid.New(), Name: "x"}), store.ErrDeckNotFound)
	assert.ErrorIs(t, stores.Decks.Create(ctx, &domain.Deck{ID: uuid.New()}), store.ErrInvalidEntity)
}

func TestDeckStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t), nil)

	deck := mustDeck(t, stores, "Go")
	other := mustDeck(t, stores, "Rust")
	card := mustCard(t, stores, deck.ID, "q1")
	kept := mustCard(t, stores, other.ID, "q2")

	require.NoError(t, stores.Decks.Delete(ctx, deck.ID))

	_, err := stores.Cards.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	_, err = stores.Cards.GetByID(ctx, kept.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, stores.Decks.Delete(ctx, deck.ID), store.ErrDeckNotFound)
}

func TestCardStore(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t), nil)
	deck := mustDeck(t, stores, "Go")

	t.Run("create requires deck", func(t *testing.T) {
		card, err := domain.NewCard(uuid.New(), "q", "a", "")
		require.NoError(t, err)
		assert.ErrorIs(t, stores.Cards.Create(ctx, card), store.ErrDeckNotFound)
	})

	t.Run("round trip with review timestamps", func(t *testing.T) {
		card := mustCard(t, stores, deck.ID, "What is a channel?")

		reviewed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		next := reviewed.AddDate(0, 0, 3)
		card.LastReviewedAt = &reviewed
		card.NextReviewAt = &next
		card.ReviewStatus = domain.ReviewStatusLearning
		require.NoError(t, stores.Cards.Update(ctx, card))

		got, err := stores.Cards.GetByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusLearning, got.ReviewStatus)
		require.NotNil(t, got.LastReviewedAt)
		assert.True(t, reviewed.Equal(*got.LastReviewedAt))
		require.NotNil(t, got.NextReviewAt)
		assert.True(t, next.Equal(*got.NextReviewAt))
	})

	t.Run("update and delete unknown card", func(t *testing.T) {
		card, err := domain.NewCard(deck.ID, "q", "a", "")
		require.NoError(t, err)
		assert.ErrorIs(t, stores.Cards.Update(ctx, card), store.ErrCardNotFound)
		assert.ErrorIs(t, stores.Cards.Delete(ctx, card.ID), store.ErrCardNotFound)
	})

	t.Run("invalid card rejected", func(t *testing.T) {
		card, err := domain.NewCard(deck.ID, "q", "a", "")
		require.NoError(t, err)
		card.Answer = ""
		assert.ErrorIs(t, stores.Cards.Create(ctx, card), store.ErrInvalidEntity)
	})
}

func TestCardStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	stores := NewStores(newTestDB(t), nil)

	deckA := mustDeck(t, stores, "A")
	deckB := mustDeck(t, stores, "B")
	a1 := mustCard(t, stores, deckA.ID, "a1")
	a2 := mustCard(t, stores, deckA.ID, "a2")
	mustCard(t, stores, deckB.ID, "b1")

	require.NoError(t, a2.SetStatus(domain.ReviewStatusMastered))
	require.NoError(t, stores.Cards.Update(ctx, a2))

	all, err := stores.Cards.List(ctx, store.CardFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	inA, err := stores.Cards.List(ctx, store.CardFilter{DeckID: &deckA.ID})
	require.NoError(t, err)
	require.Len(t, inA, 2)
	for _, c := range inA {
		assert.Equal(t, deckA.ID, c.DeckID)
	}

	status := domain.ReviewStatusNew
	newInA, err := stores.Cards.List(ctx, store.CardFilter{DeckID: &deckA.ID, Status: &status})
	require.NoError(t, err)
	require.Len(t, newInA, 1)
	assert.Equal(t, a1.ID, newInA[0].ID)

	empty := uuid.New()
	none, err := stores.Cards.List(ctx, store.CardFilter{DeckID: &empty})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTransactor(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	stores := NewStores(db, nil)
	deck := mustDeck(t, stores, "Go")
	tx := NewTransactor(db, nil)

	t.Run("rollback on error", func(t *testing.T) {
		sentinel := errors.New("abort")
		var created *domain.Card

		err := tx.WithinTx(ctx, func(ctx context.Context, s store.Stores) error {
			card, err := domain.NewCard(deck.ID, "q", "a", "")
			require.NoError(t, err)
			require.NoError(t, s.Cards.Create(ctx, card))
			created = card
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)

		_, err = stores.Cards.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		var created *domain.Card

		err := tx.WithinTx(ctx, func(ctx context.Context, s store.Stores) error {
			card, err := domain.NewCard(deck.ID, "q", "a", "")
			if err != nil {
				return err
			}
			created = card
			return s.Cards.Create(ctx, card)
		})
		require.NoError(t, err)

		_, err = stores.Cards.GetByID(ctx, created.ID)
		assert.NoError(t, err)
	})
}

func TestEnsureDirForSQLite(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, ensureDirForSQLite(":memory:"))
	assert.NoError(t, ensureDirForSQLite("file:"+dir+"/nested/tracker.db?cache=shared"))
	assert.DirExists(t, dir+"/nested")
}
