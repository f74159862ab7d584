package srs

import (
	"sort"
	"time"

	"github.com/phrazzld/learning-tracker/internal/domain"
)

// calculateNextReviewDate determines when the card should next be reviewed.
//
// The offset is a fixed number of calendar days per grade, taken from params,
// and is always measured from now. Earlier reviews of the card have no
// influence on the result.
//
// Parameters:
//   - grade: The reviewer's grade (Easy, Medium, Hard)
//   - now: The time the review was performed
//   - params: Configuration parameters for the scheduler
func calculateNextReviewDate(grade domain.Grade, now time.Time, params *Params) time.Time {
	return now.AddDate(0, 0, params.IntervalDays[grade])
}

// calculateNextCard creates a new Card with updated values based on the review grade.
//
// The input card is never modified. The returned card has:
//   - LastReviewedAt set to now
//   - NextReviewAt set to now plus the grade offset
//   - Difficulty set to the grade
//   - ReviewStatus moved from New to Learning on a first review, otherwise unchanged
//   - UpdatedAt set to now
func calculateNextCard(card *domain.Card, grade domain.Grade, now time.Time, params *Params) *domain.Card {
	next := card.Clone()

	reviewedAt := now
	nextReviewAt := calculateNextReviewDate(grade, now, params)

	next.LastReviewedAt = &reviewedAt
	next.NextReviewAt = &nextReviewAt
	next.Difficulty = grade
	if next.ReviewStatus == domain.ReviewStatusNew {
		next.ReviewStatus = domain.ReviewStatusLearning
	}
	next.UpdatedAt = now

	return next
}

// orderForReview returns a sorted copy of cards in study order.
//
// Sort keys:
//   - status rank ascending (New, Learning, Review, Mastered)
//   - last reviewed time ascending, with never-reviewed cards first
//
// The sort is stable, so cards that tie on both keys keep their input order.
func orderForReview(cards []*domain.Card) []*domain.Card {
	ordered := make([]*domain.Card, len(cards))
	copy(ordered, cards)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if ra, rb := a.ReviewStatus.Rank(), b.ReviewStatus.Rank(); ra != rb {
			return ra < rb
		}
		return reviewedBefore(a.LastReviewedAt, b.LastReviewedAt)
	})

	return ordered
}

// reviewedBefore orders nil (never reviewed) ahead of any timestamp.
func reviewedBefore(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}
