package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck, err := NewDeck("  Go basics ", "syntax and idioms")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, deck.ID)
	assert.Equal(t, "Go basics", deck.Name)
	assert.Nil(t, deck.LastStudiedAt)

	_, err = NewDeck("", "")
	assert.ErrorIs(t, err, ErrDeckNameEmpty)

	_, err = NewDeck(strings.Repeat("x", MaxDeckNameLength+1), "")
	assert.ErrorIs(t, err, ErrDeckNameTooLong)
}

func TestDeckRename(t *testing.T) {
	t.Parallel()

	deck, err := NewDeck("Go", "")
	require.NoError(t, err)

	require.NoError(t, deck.Rename("Rust", "ownership"))
	assert.Equal(t, "Rust", deck.Name)
	assert.Equal(t, "ownership", deck.Description)

	assert.ErrorIs(t, deck.Rename(" ", "x"), ErrDeckNameEmpty)
	assert.Equal(t, "Rust", deck.Name)
}

func TestComputeDeckStats(t *testing.T) {
	t.Parallel()

	t.Run("empty deck", func(t *testing.T) {
		stats := ComputeDeckStats(nil)
		assert.Equal(t, 0, stats.TotalCards)
		assert.Equal(t, 0.0, stats.MasteryPercentage)
		assert.Equal(t, StatusCounts{}, stats.StatusCounts)
	})

	t.Run("mixed statuses", func(t *testing.T) {
		reviewed := time.Now().UTC()
		cards := []*Card{
			{ReviewStatus: ReviewStatusNew},
			{ReviewStatus: ReviewStatusLearning, LastReviewedAt: &reviewed},
			{ReviewStatus: ReviewStatusMastered, LastReviewedAt: &reviewed},
			{ReviewStatus: ReviewStatusMastered, LastReviewedAt: &reviewed},
		}

		stats := ComputeDeckStats(cards)
		assert.Equal(t, 4, stats.TotalCards)
		assert.Equal(t, 2, stats.MasteredCards)
		assert.Equal(t, 3, stats.ReviewedCards)
		assert.InDelta(t, 50.0, stats.MasteryPercentage, 0.001)
		assert.Equal(t, StatusCounts{New: 1, Learning: 1, Mastered: 2}, stats.StatusCounts)
		assert.Equal(t, 1, stats.StatusCounts.Get(ReviewStatusLearning))
		assert.Equal(t, 0, stats.StatusCounts.Get(ReviewStatus("Unknown")))
	})

	t.Run("status counts use lowercase keys", func(t *testing.T) {
		stats := ComputeDeckStats([]*Card{{ReviewStatus: ReviewStatusReview}})

		raw, err := json.Marshal(stats)
		require.NoError(t, err)

		var decoded struct {
			StatusCounts map[string]int `json:"status_counts"`
		}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, map[string]int{"new": 0, "learning": 0, "review": 1, "mastered": 0}, decoded.StatusCounts)
	})
}
