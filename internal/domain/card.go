package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardQuestionEmpty is returned when a card's question is blank.
	ErrCardQuestionEmpty = errors.New("card question cannot be empty")

	// ErrCardAnswerEmpty is returned when a card's answer is blank.
	ErrCardAnswerEmpty = errors.New("card answer cannot be empty")

	// ErrCardNewWithHistory is returned when a card tagged New carries a review timestamp.
	ErrCardNewWithHistory = errors.New("new card cannot have a last reviewed time")

	// ErrCardScheduleOrder is returned when the next review is not after the last review.
	ErrCardScheduleOrder = errors.New("next review must be after last review")
)

// Card is a single question/answer flashcard belonging to a deck.
type Card struct {
	ID             uuid.UUID    `json:"id"`
	DeckID         uuid.UUID    `json:"deck_id"`
	Question       string       `json:"question"`
	Answer         string       `json:"answer"`
	Difficulty     Grade        `json:"difficulty"`
	LastReviewedAt *time.Time   `json:"last_reviewed_at"`
	NextReviewAt   *time.Time   `json:"next_review_at"`
	ReviewStatus   ReviewStatus `json:"review_status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewCard creates a new Card in the given deck. The card starts with status
// New and no review timestamps. An empty difficulty defaults to Medium.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, question, answer string, difficulty Grade) (*Card, error) {
	if difficulty == "" {
		difficulty = GradeMedium
	}

	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		DeckID:       deckID,
		Question:     question,
		Answer:       answer,
		Difficulty:   difficulty,
		ReviewStatus: ReviewStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	if !c.Difficulty.Valid() {
		return ErrInvalidGrade
	}

	if !c.ReviewStatus.Valid() {
		return ErrInvalidReviewStatus
	}

	if c.ReviewStatus == ReviewStatusNew && c.LastReviewedAt != nil {
		return ErrCardNewWithHistory
	}

	if c.LastReviewedAt != nil && c.NextReviewAt != nil && !c.NextReviewAt.After(*c.LastReviewedAt) {
		return ErrCardScheduleOrder
	}

	return nil
}

// Clone returns a deep copy of the card, including its timestamp pointers.
func (c *Card) Clone() *Card {
	clone := *c
	if c.LastReviewedAt != nil {
		t := *c.LastReviewedAt
		clone.LastReviewedAt = &t
	}
	if c.NextReviewAt != nil {
		t := *c.NextReviewAt
		clone.NextReviewAt = &t
	}
	return &clone
}

// IsDue reports whether the card should be studied at now: it has never
// been scheduled, or its next review time has passed.
func (c *Card) IsDue(now time.Time) bool {
	return c.NextReviewAt == nil || !c.NextReviewAt.After(now)
}

// UpdateContent replaces the question, answer and difficulty and bumps
// UpdatedAt. The card is left unchanged if the new values are invalid.
func (c *Card) UpdateContent(question, answer string, difficulty Grade) error {
	updated := c.Clone()
	updated.Question = question
	updated.Answer = answer
	if difficulty != "" {
		updated.Difficulty = difficulty
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*c = *updated
	return nil
}

// SetStatus changes the lifecycle tag. Moving a card back to New clears its
// review history so that a New card is never marked as reviewed.
func (c *Card) SetStatus(status ReviewStatus) error {
	if !status.Valid() {
		return ErrInvalidReviewStatus
	}

	c.ReviewStatus = status
	if status == ReviewStatusNew {
		c.LastReviewedAt = nil
		c.NextReviewAt = nil
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}
