package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxDeckNameLength bounds the deck name.
const MaxDeckNameLength = 200

// Deck-specific validation errors
var (
	ErrDeckIDEmpty     = errors.New("deck ID cannot be empty")
	ErrDeckNameEmpty   = errors.New("deck name cannot be empty")
	ErrDeckNameTooLong = errors.New("deck name is too long")
)

// Deck is a named collection of cards. A deck is the sole owner of its cards.
type Deck struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	LastStudiedAt *time.Time `json:"last_studied_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewDeck creates a new Deck with a generated ID.
func NewDeck(name, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}
	if len(d.Name) > MaxDeckNameLength {
		return ErrDeckNameTooLong
	}
	return nil
}

// Rename updates the name and description. The deck is left unchanged if the
// new values are invalid.
func (d *Deck) Rename(name, description string) error {
	updated := *d
	updated.Name = strings.TrimSpace(name)
	updated.Description = description
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*d = updated
	return nil
}

// DeckStats summarizes review progress for a deck.
type DeckStats struct {
	TotalCards        int          `json:"total_cards"`
	MasteredCards     int          `json:"mastered_cards"`
	ReviewedCards     int          `json:"reviewed_cards"`
	MasteryPercentage float64      `json:"mastery_percentage"`
	StatusCounts      StatusCounts `json:"status_counts"`
}

// StatusCounts holds the number of cards in each review status.
type StatusCounts struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	Mastered int `json:"mastered"`
}

// Get returns the count for status, or zero for an unknown status.
func (c StatusCounts) Get(status ReviewStatus) int {
	switch status {
	case ReviewStatusNew:
		return c.New
	case ReviewStatusLearning:
		return c.Learning
	case ReviewStatusReview:
		return c.Review
	case ReviewStatusMastered:
		return c.Mastered
	}
	return 0
}

func (c *StatusCounts) add(status ReviewStatus) {
	switch status {
	case ReviewStatusNew:
		c.New++
	case ReviewStatusLearning:
		c.Learning++
	case ReviewStatusReview:
		c.Review++
	case ReviewStatusMastered:
		c.Mastered++
	}
}

// ComputeDeckStats aggregates the given cards into DeckStats.
func ComputeDeckStats(cards []*Card) DeckStats {
	stats := DeckStats{TotalCards: len(cards)}

	for _, c := range cards {
		stats.StatusCounts.add(c.ReviewStatus)
		if c.LastReviewedAt != nil {
			stats.ReviewedCards++
		}
	}

	stats.MasteredCards = stats.StatusCounts.Mastered
	if stats.TotalCards > 0 {
		stats.MasteryPercentage = float64(stats.MasteredCards) / float64(stats.TotalCards) * 100
	}

	return stats
}
