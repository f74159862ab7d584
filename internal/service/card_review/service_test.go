package card_review_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/domain/srs"
	"github.com/phrazzld/learning-tracker/internal/events"
	"github.com/phrazzld/learning-tracker/internal/mocks"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var reviewTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	decks   *mocks.MockDeckStore
	cards   *mocks.MockCardStore
	tx      *mocks.MockTransactor
	emitter *mocks.MockEventEmitter
	svc     card_review.CardReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		decks:   new(mocks.MockDeckStore),
		cards:   new(mocks.MockCardStore),
		emitter: &mocks.MockEventEmitter{},
	}
	stores := store.Stores{Decks: f.decks, Cards: f.cards}
	f.tx = mocks.NewMockTransactor(stores)
	f.svc = card_review.NewCardReviewService(
		f.tx,
		stores,
		srs.NewDefaultService(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		card_review.WithEventEmitter(f.emitter),
		card_review.WithClock(func() time.Time { return reviewTime }),
	)

	t.Cleanup(func() {
		f.decks.AssertExpectations(t)
		f.cards.AssertExpectations(t)
	})
	return f
}

func newCard(t *testing.T, deckID uuid.UUID) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(deckID, "What is the capital of France?", "Paris", domain.GradeMedium)
	require.NoError(t, err)
	return card
}

func TestRecordReview(t *testing.T) {
	t.Parallel()

	t.Run("hard review schedules one day out and persists", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := newCard(t, uuid.New())

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Card) bool {
			return c.ID == card.ID && c.Difficulty == domain.GradeHard
		})).Return(nil)

		got, err := f.svc.RecordReview(context.Background(), card.ID, domain.GradeHard)
		require.NoError(t, err)

		require.NotNil(t, got.LastReviewedAt)
		require.NotNil(t, got.NextReviewAt)
		assert.Equal(t, reviewTime, *got.LastReviewedAt)
		assert.Equal(t, time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC), *got.NextReviewAt)
		assert.Equal(t, domain.ReviewStatusLearning, got.ReviewStatus)

		// the loaded card is not mutated
		assert.Nil(t, card.LastReviewedAt)
		assert.Equal(t, domain.ReviewStatusNew, card.ReviewStatus)
		assert.Equal(t, 1, f.tx.Calls)
	})

	t.Run("emits card.reviewed after commit", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := newCard(t, uuid.New())

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.RecordReview(context.Background(), card.ID, domain.GradeEasy)
		require.NoError(t, err)

		emitted := f.emitter.Events()
		require.Len(t, emitted, 1)
		assert.Equal(t, events.CardReviewed, emitted[0].Type)

		var payload events.CardReviewedPayload
		require.NoError(t, emitted[0].UnmarshalPayload(&payload))
		assert.Equal(t, card.ID, payload.CardID)
		assert.Equal(t, card.DeckID, payload.DeckID)
		assert.Equal(t, "Easy", payload.Grade)
		assert.True(t, reviewTime.Equal(payload.ReviewedAt))
	})

	t.Run("handler failure does not fail the review", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.emitter.Err = errors.New("handler down")
		card := newCard(t, uuid.New())

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.svc.RecordReview(context.Background(), card.ID, domain.GradeMedium)
		require.NoError(t, err)
		assert.Equal(t, domain.GradeMedium, got.Difficulty)
	})

	t.Run("invalid grade never touches the store", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.RecordReview(context.Background(), uuid.New(), domain.Grade("Impossible"))
		assert.ErrorIs(t, err, card_review.ErrInvalidGrade)
		assert.Equal(t, 0, f.tx.Calls)
		assert.Empty(t, f.emitter.Events())
	})

	t.Run("unknown card", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		id := uuid.New()

		f.cards.On("GetByID", mock.Anything, id).Return(nil, store.ErrCardNotFound)

		_, err := f.svc.RecordReview(context.Background(), id, domain.GradeEasy)
		assert.ErrorIs(t, err, card_review.ErrCardNotFound)
		assert.Empty(t, f.emitter.Events())
	})

	t.Run("update failure is wrapped", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := newCard(t, uuid.New())
		dbErr := errors.New("connection reset")

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(dbErr)

		_, err := f.svc.RecordReview(context.Background(), card.ID, domain.GradeEasy)
		require.Error(t, err)

		var svcErr *card_review.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "record_review", svcErr.Operation)
		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, f.emitter.Events())
	})

	t.Run("transaction failure is wrapped", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.tx.Err = store.ErrTransactionFailed

		_, err := f.svc.RecordReview(context.Background(), uuid.New(), domain.GradeEasy)
		assert.ErrorIs(t, err, store.ErrTransactionFailed)

		var svcErr *card_review.ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}

func TestGetReviewQueue(t *testing.T) {
	t.Parallel()

	ts := func(day int) *time.Time {
		v := time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
		return &v
	}

	t.Run("orders by status then last review", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		deckID := uuid.New()

		a := newCard(t, deckID)
		a.ReviewStatus, a.LastReviewedAt, a.NextReviewAt = domain.ReviewStatusMastered, ts(1), ts(8)
		b := newCard(t, deckID)
		c := newCard(t, deckID)
		c.ReviewStatus, c.LastReviewedAt, c.NextReviewAt = domain.ReviewStatusLearning, ts(2), ts(3)

		f.cards.On("List", mock.Anything, store.CardFilter{}).Return([]*domain.Card{a, b, c}, nil)

		queue, err := f.svc.GetReviewQueue(context.Background(), nil, 10)
		require.NoError(t, err)
		require.Len(t, queue, 3)
		assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, []uuid.UUID{queue[0].ID, queue[1].ID, queue[2].ID})
	})

	t.Run("filters by deck and truncates", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		deck, err := domain.NewDeck("French", "")
		require.NoError(t, err)

		cards := make([]*domain.Card, 0, 10)
		for i := 0; i < 10; i++ {
			cards = append(cards, newCard(t, deck.ID))
		}

		f.decks.On("GetByID", mock.Anything, deck.ID).Return(deck, nil)
		f.cards.On("List", mock.Anything, store.CardFilter{DeckID: &deck.ID}).Return(cards, nil)

		queue, err := f.svc.GetReviewQueue(context.Background(), &deck.ID, 3)
		require.NoError(t, err)
		assert.Len(t, queue, 3)
		assert.Equal(t, cards[0].ID, queue[0].ID)
	})

	t.Run("empty store yields empty queue", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		f.cards.On("List", mock.Anything, store.CardFilter{}).Return([]*domain.Card{}, nil)

		queue, err := f.svc.GetReviewQueue(context.Background(), nil, 10)
		require.NoError(t, err)
		assert.NotNil(t, queue)
		assert.Empty(t, queue)
	})

	t.Run("non-positive limit", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.GetReviewQueue(context.Background(), nil, 0)
		assert.ErrorIs(t, err, card_review.ErrInvalidLimit)

		_, err = f.svc.GetReviewQueue(context.Background(), nil, -4)
		assert.ErrorIs(t, err, card_review.ErrInvalidLimit)
	})

	t.Run("unknown deck", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		id := uuid.New()

		f.decks.On("GetByID", mock.Anything, id).Return(nil, store.ErrDeckNotFound)

		_, err := f.svc.GetReviewQueue(context.Background(), &id, 10)
		assert.ErrorIs(t, err, card_review.ErrDeckNotFound)
	})

	t.Run("list failure", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		f.cards.On("List", mock.Anything, store.CardFilter{}).Return(nil, errors.New("boom"))

		_, err := f.svc.GetReviewQueue(context.Background(), nil, 10)
		var svcErr *card_review.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "get_review_queue", svcErr.Operation)
	})
}

func TestNewCardReviewServicePanicsOnMissingDependencies(t *testing.T) {
	t.Parallel()

	stores := store.Stores{Decks: new(mocks.MockDeckStore), Cards: new(mocks.MockCardStore)}
	tx := mocks.NewMockTransactor(stores)

	assert.Panics(t, func() {
		card_review.NewCardReviewService(nil, stores, srs.NewDefaultService(), nil)
	})
	assert.Panics(t, func() {
		card_review.NewCardReviewService(tx, store.Stores{}, srs.NewDefaultService(), nil)
	})
	assert.Panics(t, func() {
		card_review.NewCardReviewService(tx, stores, nil, nil)
	})
	assert.NotPanics(t, func() {
		card_review.NewCardReviewService(tx, stores, srs.NewDefaultService(), nil)
	})
}

func TestServiceError(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	err := card_review.NewRecordReviewError("failed to save card", inner)
	assert.Equal(t, "record_review operation failed: failed to save card: inner", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := card_review.NewGetReviewQueueError("no cards", nil)
	assert.Equal(t, "get_review_queue operation failed: no cards", bare.Error())
}
