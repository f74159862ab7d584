package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateCard(t *testing.T) {
	t.Parallel()

	t.Run("creates a New card with default difficulty", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		deck := mustDeck(t, "Math")

		f.decks.On("GetByID", mock.Anything, deck.ID).Return(deck, nil)
		f.cards.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Card) bool {
			return c.DeckID == deck.ID && c.ReviewStatus == domain.ReviewStatusNew
		})).Return(nil)

		card, err := f.card.CreateCard(context.Background(), deck.ID, "2 + 2", "4", "")
		require.NoError(t, err)
		assert.Equal(t, domain.GradeMedium, card.Difficulty)
		assert.Nil(t, card.LastReviewedAt)
		assert.Nil(t, card.NextReviewAt)
	})

	t.Run("deck must exist", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		id := uuid.New()
		f.decks.On("GetByID", mock.Anything, id).Return(nil, store.ErrDeckNotFound)

		_, err := f.card.CreateCard(context.Background(), id, "q", "a", domain.GradeEasy)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})

	t.Run("deck removed concurrently", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		deck := mustDeck(t, "Math")
		f.decks.On("GetByID", mock.Anything, deck.ID).Return(deck, nil)
		f.cards.On("Create", mock.Anything, mock.Anything).Return(store.ErrDeckNotFound)

		_, err := f.card.CreateCard(context.Background(), deck.ID, "q", "a", domain.GradeEasy)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.card.CreateCard(context.Background(), uuid.New(), "", "a", "")
		assert.ErrorIs(t, err, domain.ErrCardQuestionEmpty)

		_, err = f.card.CreateCard(context.Background(), uuid.New(), "q", "a", domain.Grade("Trivial"))
		assert.ErrorIs(t, err, domain.ErrInvalidGrade)
		assert.Equal(t, 0, f.tx.Calls)
	})
}

func TestGetCard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	card := mustCard(t, uuid.New())
	missing := uuid.New()
	f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
	f.cards.On("GetByID", mock.Anything, missing).Return(nil, store.ErrCardNotFound)

	got, err := f.card.GetCard(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, card, got)

	_, err = f.card.GetCard(context.Background(), missing)
	assert.ErrorIs(t, err, service.ErrCardNotFound)
}

func TestListCards(t *testing.T) {
	t.Parallel()

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		deck := mustDeck(t, "Math")
		status := domain.ReviewStatusLearning
		card := mustCard(t, deck.ID)

		f.decks.On("GetByID", mock.Anything, deck.ID).Return(deck, nil)
		f.cards.On("List", mock.Anything, store.CardFilter{DeckID: &deck.ID, Status: &status}).
			Return([]*domain.Card{card}, nil)

		cards, err := f.card.ListCards(context.Background(), deck.ID, &status)
		require.NoError(t, err)
		assert.Len(t, cards, 1)
	})

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		status := domain.ReviewStatus("Forgotten")

		_, err := f.card.ListCards(context.Background(), uuid.New(), &status)
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("unknown deck", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		id := uuid.New()
		f.decks.On("GetByID", mock.Anything, id).Return(nil, store.ErrDeckNotFound)

		_, err := f.card.ListCards(context.Background(), id, nil)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})
}

func TestUpdateCard(t *testing.T) {
	t.Parallel()

	t.Run("updates content", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.card.UpdateCard(context.Background(), card.ID, service.CardUpdate{
			Question:   "3 + 3",
			Answer:     "6",
			Difficulty: domain.GradeHard,
		})
		require.NoError(t, err)
		assert.Equal(t, "3 + 3", got.Question)
		assert.Equal(t, domain.GradeHard, got.Difficulty)
	})

	t.Run("moves to another deck", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())
		target := mustDeck(t, "Target")

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.decks.On("GetByID", mock.Anything, target.ID).Return(target, nil)
		f.cards.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Card) bool {
			return c.DeckID == target.ID
		})).Return(nil)

		got, err := f.card.UpdateCard(context.Background(), card.ID, service.CardUpdate{
			Question: card.Question,
			Answer:   card.Answer,
			DeckID:   &target.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, target.ID, got.DeckID)
	})

	t.Run("target deck must exist", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())
		missing := uuid.New()

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.decks.On("GetByID", mock.Anything, missing).Return(nil, store.ErrDeckNotFound)

		_, err := f.card.UpdateCard(context.Background(), card.ID, service.CardUpdate{
			Question: "q",
			Answer:   "a",
			DeckID:   &missing,
		})
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})

	t.Run("empty answer rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())
		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)

		_, err := f.card.UpdateCard(context.Background(), card.ID, service.CardUpdate{Question: "q"})
		assert.ErrorIs(t, err, domain.ErrCardAnswerEmpty)
	})

	t.Run("unknown card", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		id := uuid.New()
		f.cards.On("GetByID", mock.Anything, id).Return(nil, store.ErrCardNotFound)

		_, err := f.card.UpdateCard(context.Background(), id, service.CardUpdate{Question: "q", Answer: "a"})
		assert.ErrorIs(t, err, service.ErrCardNotFound)
	})
}

func TestDeleteCard(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	id := uuid.New()
	broken := uuid.New()
	f.cards.On("Delete", mock.Anything, id).Return(nil)
	f.cards.On("Delete", mock.Anything, broken).Return(errors.New("io"))

	assert.NoError(t, f.card.DeleteCard(context.Background(), id))

	err := f.card.DeleteCard(context.Background(), broken)
	var svcErr *service.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "card", svcErr.Service)
	assert.Equal(t, "delete_card", svcErr.Operation)
}

func TestSetCardStatus(t *testing.T) {
	t.Parallel()

	t.Run("setting New clears history", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())
		last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		next := last.AddDate(0, 0, 3)
		card.ReviewStatus = domain.ReviewStatusReview
		card.LastReviewedAt = &last
		card.NextReviewAt = &next

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.card.SetCardStatus(context.Background(), card.ID, domain.ReviewStatusNew)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusNew, got.ReviewStatus)
		assert.Nil(t, got.LastReviewedAt)
		assert.Nil(t, got.NextReviewAt)
	})

	t.Run("mastered keeps history", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		card := mustCard(t, uuid.New())
		last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		card.ReviewStatus = domain.ReviewStatusLearning
		card.LastReviewedAt = &last

		f.cards.On("GetByID", mock.Anything, card.ID).Return(card, nil)
		f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)

		got, err := f.card.SetCardStatus(context.Background(), card.ID, domain.ReviewStatusMastered)
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewStatusMastered, got.ReviewStatus)
		assert.Equal(t, &last, got.LastReviewedAt)
	})

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.card.SetCardStatus(context.Background(), uuid.New(), domain.ReviewStatus("Done"))
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
		assert.Equal(t, 0, f.tx.Calls)
	})
}
