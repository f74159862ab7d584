package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
)

type deckModel struct {
	ID            string `gorm:"primaryKey;size:36"`
	Name          string `gorm:"size:200;not null"`
	Description   string
	LastStudiedAt *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

func (deckModel) TableName() string { return "decks" }

type cardModel struct {
	ID             string `gorm:"primaryKey;size:36"`
	DeckID         string `gorm:"size:36;index;not null"`
	Question       string `gorm:"not null"`
	Answer         string `gorm:"not null"`
	Difficulty     string `gorm:"default:Medium"`
	ReviewStatus   string `gorm:"index;default:New"`
	LastReviewedAt *time.Time
	NextReviewAt   *time.Time
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (cardModel) TableName() string { return "cards" }

func deckFromDomain(d *domain.Deck) *deckModel {
	return &deckModel{
		ID:            d.ID.String(),
		Name:          d.Name,
		Description:   d.Description,
		LastStudiedAt: utcPtr(d.LastStudiedAt),
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}
}

func (m *deckModel) toDomain() (*domain.Deck, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Deck{
		ID:            id,
		Name:          m.Name,
		Description:   m.Description,
		LastStudiedAt: utcPtr(m.LastStudiedAt),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}, nil
}

func cardFromDomain(c *domain.Card) *cardModel {
	return &cardModel{
		ID:             c.ID.String(),
		DeckID:         c.DeckID.String(),
		Question:       c.Question,
		Answer:         c.Answer,
		Difficulty:     string(c.Difficulty),
		ReviewStatus:   string(c.ReviewStatus),
		LastReviewedAt: utcPtr(c.LastReviewedAt),
		NextReviewAt:   utcPtr(c.NextReviewAt),
		CreatedAt:      c.CreatedAt.UTC(),
		UpdatedAt:      c.UpdatedAt.UTC(),
	}
}

func (m *cardModel) toDomain() (*domain.Card, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	deckID, err := uuid.Parse(m.DeckID)
	if err != nil {
		return nil, err
	}
	return &domain.Card{
		ID:             id,
		DeckID:         deckID,
		Question:       m.Question,
		Answer:         m.Answer,
		Difficulty:     domain.Grade(m.Difficulty),
		ReviewStatus:   domain.ReviewStatus(m.ReviewStatus),
		LastReviewedAt: utcPtr(m.LastReviewedAt),
		NextReviewAt:   utcPtr(m.NextReviewAt),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
